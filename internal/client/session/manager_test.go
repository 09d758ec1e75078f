package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/legalwriter/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/legalwriter/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChecker treats tokens listed in expired as expired.
type fakeChecker struct {
	expired map[string]bool
}

func (f fakeChecker) IsExpired(token string) bool { return token == "" || f.expired[token] }

// failingRepo wraps a real repository and fails selected operations.
type failingRepo struct {
	tokens.Repository
	getErr   error
	putErr   error
	clearErr error
}

func (f *failingRepo) Get(ctx context.Context, name string) (*tokens.Record, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Repository.Get(ctx, name)
}

func (f *failingRepo) Put(ctx context.Context, rec tokens.Record) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.Repository.Put(ctx, rec)
}

func (f *failingRepo) PutAll(ctx context.Context, recs ...tokens.Record) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.Repository.PutAll(ctx, recs...)
}

func (f *failingRepo) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.Repository.Clear(ctx)
}

var t0 = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func openRepo(t *testing.T, path string) *tokens.SQLiteRepository {
	t.Helper()
	db, repo, err := OpenStore(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repo
}

func TestManager_StartsUnauthenticated(t *testing.T) {
	m := NewManager(openRepo(t, ":memory:"), fakeChecker{})
	require.NoError(t, m.Init(context.Background()))

	_, ok := m.AccessToken()
	assert.False(t, ok)
	_, ok = m.RefreshToken()
	assert.False(t, ok)
	assert.False(t, m.IsAuthenticated())
}

func TestManager_SetTokensAndRead(t *testing.T) {
	m := NewManager(openRepo(t, ":memory:"), fakeChecker{})
	ctx := context.Background()

	require.NoError(t, m.SetTokens(ctx, "AT", "RT"))

	at, ok := m.AccessToken()
	require.True(t, ok)
	assert.Equal(t, "AT", at)
	rt, ok := m.RefreshToken()
	require.True(t, ok)
	assert.Equal(t, "RT", rt)
	assert.True(t, m.IsAuthenticated())
}

func TestManager_IsAuthenticatedFalseForExpiredAccess(t *testing.T) {
	m := NewManager(openRepo(t, ":memory:"), fakeChecker{expired: map[string]bool{"OLD": true}})
	require.NoError(t, m.SetTokens(context.Background(), "OLD", "RT"))

	assert.False(t, m.IsAuthenticated())
}

func TestManager_SetAccessTokenKeepsRefresh(t *testing.T) {
	m := NewManager(openRepo(t, ":memory:"), fakeChecker{})
	ctx := context.Background()
	require.NoError(t, m.SetTokens(ctx, "AT1", "RT"))

	require.NoError(t, m.SetAccessToken(ctx, "AT2"))

	at, _ := m.AccessToken()
	rt, _ := m.RefreshToken()
	assert.Equal(t, "AT2", at)
	assert.Equal(t, "RT", rt)
}

func TestManager_InitHydratesFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.db")
	ctx := context.Background()
	clock := func() time.Time { return t0 }

	first := NewManager(openRepo(t, path), fakeChecker{}, WithClock(clock))
	require.NoError(t, first.SetTokens(ctx, "AT", "RT"))

	second := NewManager(openRepo(t, path), fakeChecker{}, WithClock(clock))
	require.NoError(t, second.Init(ctx))

	at, ok := second.AccessToken()
	require.True(t, ok)
	assert.Equal(t, "AT", at)
	rt, ok := second.RefreshToken()
	require.True(t, ok)
	assert.Equal(t, "RT", rt)
}

func TestManager_InitDiscardsExpiredRefreshToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()
	repo := openRepo(t, path)

	written := NewManager(repo, fakeChecker{}, WithClock(func() time.Time { return t0 }), WithRefreshTTL(time.Hour))
	require.NoError(t, written.SetTokens(ctx, "AT", "RT"))

	later := NewManager(repo, fakeChecker{}, WithClock(func() time.Time { return t0.Add(2 * time.Hour) }))
	require.NoError(t, later.Init(ctx))

	_, ok := later.RefreshToken()
	assert.False(t, ok)

	rec, err := repo.Get(ctx, common.RefreshTokenName)
	require.NoError(t, err)
	assert.Nil(t, rec, "expired refresh record must be deleted")
}

func TestManager_RefreshTokenExpiresInMemory(t *testing.T) {
	now := t0
	m := NewManager(openRepo(t, ":memory:"), fakeChecker{},
		WithClock(func() time.Time { return now }), WithRefreshTTL(24*time.Hour))
	require.NoError(t, m.SetTokens(context.Background(), "AT", "RT"))

	now = t0.Add(23 * time.Hour)
	_, ok := m.RefreshToken()
	assert.True(t, ok)

	now = t0.Add(24 * time.Hour)
	_, ok = m.RefreshToken()
	assert.False(t, ok)
}

func TestManager_ClearWipesEverythingAndRunsHooks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()
	m := NewManager(openRepo(t, path), fakeChecker{})
	require.NoError(t, m.SetTokens(ctx, "AT", "RT"))

	calls := 0
	m.OnClear(func() { calls++ })
	require.NoError(t, m.Clear(ctx))

	assert.Equal(t, 1, calls)
	_, ok := m.AccessToken()
	assert.False(t, ok)
	_, ok = m.RefreshToken()
	assert.False(t, ok)

	reopened := NewManager(openRepo(t, path), fakeChecker{})
	require.NoError(t, reopened.Init(ctx))
	_, ok = reopened.AccessToken()
	assert.False(t, ok)
}

func TestManager_ClearStoreFailureStillClearsMemory(t *testing.T) {
	boom := errors.New("disk full")
	repo := &failingRepo{Repository: openRepo(t, ":memory:")}
	m := NewManager(repo, fakeChecker{})
	ctx := context.Background()
	require.NoError(t, m.SetTokens(ctx, "AT", "RT"))

	repo.clearErr = boom
	hooked := false
	m.OnClear(func() { hooked = true })

	err := m.Clear(ctx)
	require.ErrorIs(t, err, boom)
	assert.True(t, hooked)
	_, ok := m.AccessToken()
	assert.False(t, ok)
}

func TestManager_SetTokensStoreFailureLeavesStateUntouched(t *testing.T) {
	boom := errors.New("readonly")
	repo := &failingRepo{Repository: openRepo(t, ":memory:"), putErr: boom}
	m := NewManager(repo, fakeChecker{})

	err := m.SetTokens(context.Background(), "AT", "RT")
	require.ErrorIs(t, err, boom)
	_, ok := m.AccessToken()
	assert.False(t, ok)
}

func TestManager_SetTokensIsAtomicOnDisk(t *testing.T) {
	ctx := context.Background()
	db, repo, err := OpenStore(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := NewManager(repo, fakeChecker{})
	require.NoError(t, m.SetTokens(ctx, "AT-old", "RT-old"))

	_, err = db.Exec(`CREATE TRIGGER fail_refresh BEFORE UPDATE ON session_tokens
		WHEN NEW.name = 'refresh_token' BEGIN SELECT RAISE(ABORT, 'disk full'); END`)
	require.NoError(t, err)

	err = m.SetTokens(ctx, "AT-new", "RT-new")
	require.ErrorContains(t, err, "disk full")

	access, _ := m.AccessToken()
	assert.Equal(t, "AT-old", access)

	reloaded := NewManager(repo, fakeChecker{})
	require.NoError(t, reloaded.Init(ctx))
	access, _ = reloaded.AccessToken()
	refresh, _ := reloaded.RefreshToken()
	assert.Equal(t, "AT-old", access)
	assert.Equal(t, "RT-old", refresh)
}

func TestManager_InitPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("locked")
	repo := &failingRepo{Repository: openRepo(t, ":memory:"), getErr: boom}
	m := NewManager(repo, fakeChecker{})

	require.ErrorIs(t, m.Init(context.Background()), boom)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(openRepo(t, ":memory:"), fakeChecker{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = m.SetAccessToken(ctx, "AT")
		}()
		go func() {
			defer wg.Done()
			_, _ = m.AccessToken()
			_ = m.IsAuthenticated()
		}()
	}
	wg.Wait()

	at, ok := m.AccessToken()
	require.True(t, ok)
	assert.Equal(t, "AT", at)
}

func TestOpenStore_BadPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, _, err := OpenStore(context.Background(), filepath.Join(blocker, "sub", "s.db"))
	require.Error(t, err)
}
