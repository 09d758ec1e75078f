package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/legalwriter/internal/client/models"
	"github.com/dmitrijs2005/legalwriter/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/legalwriter/internal/client/session"
	"github.com/stretchr/testify/require"
)

type fakeAuthAPI struct {
	LoginErr  error
	LastCreds models.Credentials
	loggedIn  bool
	store     tokens.Repository
}

func (f *fakeAuthAPI) Login(_ context.Context, creds models.Credentials) error {
	f.LastCreds = creds
	if f.LoginErr != nil {
		return f.LoginErr
	}
	f.loggedIn = true
	return nil
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.store.Clear(ctx)
}

func (f *fakeAuthAPI) IsAuthenticated() bool { return f.loggedIn }

func openStore(t *testing.T) tokens.Repository {
	t.Helper()
	db, repo, err := session.OpenStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repo
}

func TestAuthService_LoginRemembersUserAndWipesPassword(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	api := &fakeAuthAPI{store: store}
	svc := NewAuthService(api, store)

	pw := []byte("hunter2")
	require.NoError(t, svc.Login(ctx, "alice", pw))

	require.Equal(t, "hunter2", api.LastCreds.Password)
	require.Equal(t, make([]byte, len(pw)), pw)
	require.True(t, svc.IsAuthenticated())

	user, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", user)

	require.NoError(t, svc.Logout(ctx))
	require.False(t, svc.IsAuthenticated())
	user, err = svc.CurrentUser(ctx)
	require.NoError(t, err)
	require.Empty(t, user)
}

func TestAuthService_LoginFailure(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	api := &fakeAuthAPI{store: store, LoginErr: errors.New("401")}
	svc := NewAuthService(api, store)

	pw := []byte("wrong")
	require.Error(t, svc.Login(ctx, "alice", pw))
	require.Equal(t, make([]byte, len(pw)), pw)

	user, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	require.Empty(t, user)
}
