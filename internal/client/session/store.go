package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/legalwriter/internal/client/migrations"
	"github.com/dmitrijs2005/legalwriter/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/legalwriter/internal/dbx"
	"github.com/dmitrijs2005/legalwriter/internal/filex"
)

// OpenStore opens (creating if needed) the session database at path and
// brings its schema up to date. The caller owns the returned *sql.DB.
func OpenStore(ctx context.Context, path string) (*sql.DB, *tokens.SQLiteRepository, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, nil, err
	}

	db, err := dbx.OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("session store: %w", err)
	}

	return db, tokens.NewSQLiteRepository(db), nil
}
