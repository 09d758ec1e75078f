package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/legalwriter/internal/client/client"
	"github.com/dmitrijs2005/legalwriter/internal/client/models"
)

// Login exchanges credentials for a token pair and stores it. On failure
// the session is left as it was.
func (a *API) Login(ctx context.Context, creds models.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	pair, err := call[models.TokenPair](ctx, a, client.Request{
		Method: http.MethodPost,
		Path:   "/token/",
		Body:   creds,
		Public: true,
	})
	if err != nil {
		return err
	}
	if pair.Access == "" || pair.Refresh == "" {
		return fmt.Errorf("%w: login response is missing tokens", client.ErrMalformedResponse)
	}

	return a.session.SetTokens(ctx, pair.Access, pair.Refresh)
}

func (a *API) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}
