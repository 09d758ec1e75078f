package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/legalwriter/internal/client/models"
	"github.com/dmitrijs2005/legalwriter/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/legalwriter/internal/common"
)

const usernameRecord = "username"

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the backend and remember the username.
//   - Logout: drop the session, locally only.
//   - CurrentUser: the username of the stored session, "" when none.
//   - IsAuthenticated: whether a usable access token is held.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (string, error)
	IsAuthenticated() bool
}

type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) error
	Logout(ctx context.Context) error
	IsAuthenticated() bool
}

type authService struct {
	api   AuthAPI
	store tokens.Repository
}

// NewAuthService binds the service to the facade and the session store,
// which also keeps the username next to the tokens.
func NewAuthService(api AuthAPI, store tokens.Repository) AuthService {
	return &authService{api: api, store: store}
}

// Login wipes password once it has been sent.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, models.Credentials{Username: username, Password: string(password)}); err != nil {
		return err
	}
	if err := a.store.Put(ctx, tokens.Record{Name: usernameRecord, Value: username}); err != nil {
		return fmt.Errorf("remember username: %w", err)
	}
	return nil
}

// Logout clears the session; the store is cleared with it, username included.
func (a *authService) Logout(ctx context.Context) error {
	return a.api.Logout(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (string, error) {
	rec, err := a.store.Get(ctx, usernameRecord)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", nil
	}
	return rec.Value, nil
}

func (a *authService) IsAuthenticated() bool {
	return a.api.IsAuthenticated()
}
