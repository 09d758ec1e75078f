package tokens

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/legalwriter/internal/client/migrations"
	"github.com/dmitrijs2005/legalwriter/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := dbx.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(ctx, db))
	return db
}

func TestPutAndGet_WithoutExpiry(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, Record{Name: "access_token", Value: "AT"}))

	rec, err := r.Get(ctx, "access_token")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "AT", rec.Value)
	assert.Nil(t, rec.ExpiresAt)
}

func TestPutAndGet_WithExpiry(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	exp := time.Unix(1_900_000_000, 0)

	require.NoError(t, r.Put(ctx, Record{Name: "refresh_token", Value: "RT", ExpiresAt: &exp}))

	rec, err := r.Get(ctx, "refresh_token")
	require.NoError(t, err)
	require.NotNil(t, rec.ExpiresAt)
	assert.True(t, exp.Equal(*rec.ExpiresAt))
}

func TestGet_Absent_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	rec, err := r.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestPut_UpsertOverwritesValueAndExpiry(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	exp := time.Unix(1_900_000_000, 0)

	require.NoError(t, r.Put(ctx, Record{Name: "refresh_token", Value: "old", ExpiresAt: &exp}))
	require.NoError(t, r.Put(ctx, Record{Name: "refresh_token", Value: "new"}))

	rec, err := r.Get(ctx, "refresh_token")
	require.NoError(t, err)
	assert.Equal(t, "new", rec.Value)
	assert.Nil(t, rec.ExpiresAt)
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, Record{Name: "x", Value: "1"}))
	require.NoError(t, r.Delete(ctx, "x"))
	require.NoError(t, r.Delete(ctx, "x"))

	rec, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestClear_RemovesAll(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, Record{Name: "a", Value: "1"}))
	require.NoError(t, r.Put(ctx, Record{Name: "b", Value: "2"}))
	require.NoError(t, r.Clear(ctx))

	for _, n := range []string{"a", "b"} {
		rec, err := r.Get(ctx, n)
		require.NoError(t, err)
		require.Nil(t, rec)
	}
}

func TestRepository_WorksInsideTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return NewSQLiteRepository(tx).Put(ctx, Record{Name: "a", Value: "tx"})
	})
	require.NoError(t, err)

	rec, err := NewSQLiteRepository(db).Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "tx", rec.Value)
}

func TestErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("disk I/O error")
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT value, expires_at FROM session_tokens`).WithArgs("k").WillReturnError(boom)
	_, err = r.Get(ctx, "k")
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "failed to get token[k]")

	mock.ExpectExec(`INSERT INTO session_tokens`).WillReturnError(boom)
	err = r.Put(ctx, Record{Name: "k", Value: "v"})
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "failed to put token[k]")

	mock.ExpectExec(`DELETE FROM session_tokens WHERE name`).WithArgs("k").WillReturnError(boom)
	err = r.Delete(ctx, "k")
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "failed to delete token[k]")

	mock.ExpectExec(`DELETE FROM session_tokens`).WillReturnError(boom)
	err = r.Clear(ctx)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "failed to clear tokens")

	require.NoError(t, mock.ExpectationsWereMet())
}

// failRefreshWrites makes every write of the refresh token abort.
func failRefreshWrites(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, event := range []string{"INSERT", "UPDATE"} {
		_, err := db.Exec(`CREATE TRIGGER fail_refresh_` + event + ` BEFORE ` + event + ` ON session_tokens
			WHEN NEW.name = 'refresh_token' BEGIN SELECT RAISE(ABORT, 'disk full'); END`)
		require.NoError(t, err)
	}
}

func TestPutAll_WritesEveryRecord(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.PutAll(ctx, Record{Name: "access_token", Value: "AT"}, Record{Name: "refresh_token", Value: "RT"}))

	for name, want := range map[string]string{"access_token": "AT", "refresh_token": "RT"} {
		rec, err := r.Get(ctx, name)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, want, rec.Value)
	}
}

func TestPutAll_RollsBackOnFailure(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.PutAll(ctx, Record{Name: "access_token", Value: "AT-old"}, Record{Name: "refresh_token", Value: "RT-old"}))
	failRefreshWrites(t, db)

	err := r.PutAll(ctx, Record{Name: "access_token", Value: "AT-new"}, Record{Name: "refresh_token", Value: "RT-new"})
	require.ErrorContains(t, err, "disk full")

	access, err := r.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "AT-old", access.Value)
	refresh, err := r.Get(ctx, "refresh_token")
	require.NoError(t, err)
	assert.Equal(t, "RT-old", refresh.Value)
}

func TestPutAll_UsesTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("disk full")
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO session_tokens`).WithArgs("a", "1", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO session_tokens`).WithArgs("b", "2", sqlmock.AnyArg()).WillReturnError(boom)
	mock.ExpectRollback()

	err = NewSQLiteRepository(db).PutAll(context.Background(), Record{Name: "a", Value: "1"}, Record{Name: "b", Value: "2"})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
