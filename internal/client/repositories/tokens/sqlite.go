package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/legalwriter/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) (*Record, error) {
	var (
		value   string
		expires sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM session_tokens WHERE name = ?`, name).Scan(&value, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token[%s]: %w", name, err)
	}

	rec := &Record{Name: name, Value: value}
	if expires.Valid {
		t := time.Unix(expires.Int64, 0)
		rec.ExpiresAt = &t
	}
	return rec, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, rec Record) error {
	var expires sql.NullInt64
	if rec.ExpiresAt != nil {
		expires = sql.NullInt64{Int64: rec.ExpiresAt.Unix(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_tokens (name, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, rec.Name, rec.Value, expires)
	if err != nil {
		return fmt.Errorf("failed to put token[%s]: %w", rec.Name, err)
	}
	return nil
}

// PutAll writes recs in one transaction. A repository built over a
// transaction writes into it and leaves commit to the owner.
func (r *SQLiteRepository) PutAll(ctx context.Context, recs ...Record) error {
	db, ok := r.db.(*sql.DB)
	if !ok {
		return r.putEach(ctx, recs)
	}
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return NewSQLiteRepository(tx).putEach(ctx, recs)
	})
}

func (r *SQLiteRepository) putEach(ctx context.Context, recs []Record) error {
	for _, rec := range recs {
		if err := r.Put(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_tokens WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete token[%s]: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_tokens`)
	if err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}
