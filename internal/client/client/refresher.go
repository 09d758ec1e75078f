package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/legalwriter/internal/client/metrics"
)

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// RefreshAccessToken exchanges the stored refresh token for a new access
// token and stores it. Concurrent callers share one in-flight exchange.
//
// Any failure clears the session. A missing refresh token, a rejection or
// an unusable reply is returned as *AuthError; a transport failure keeps
// its *NetworkError so callers can tell the backend was unreachable.
func (c *Client) RefreshAccessToken(ctx context.Context) (string, error) {
	// the exchange outlives any single caller's cancellation since its
	// result is shared
	v, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		return c.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) refresh(ctx context.Context) (string, error) {
	// a refresh that finished just before this flight started already did the work
	if token, ok := c.session.AccessToken(); ok && !c.checker.IsExpired(token) {
		c.metrics.ObserveRefresh(metrics.RefreshReused)
		return token, nil
	}

	refreshToken, ok := c.session.RefreshToken()
	if !ok {
		return "", c.failRefresh(ctx, "no refresh token available", &AuthError{Status: http.StatusUnauthorized, Reason: "no refresh token available"})
	}

	c.logger.Info(ctx, "refreshing access token")

	res, err := c.dispatch(ctx, Request{
		Method: http.MethodPost,
		Path:   RefreshPath,
		Body:   refreshRequest{Refresh: refreshToken},
		Public: true,
	}, c.newRequestID())

	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return "", c.failRefresh(ctx, "token refresh rejected", &AuthError{
			Status: apiErr.Status,
			Reason: "token refresh rejected",
			Body:   apiErr.Body,
			Err:    apiErr,
		})
	case errors.Is(err, ErrMalformedResponse):
		authErr := &AuthError{Reason: "invalid refresh response", Err: err}
		if res != nil {
			authErr.Status, authErr.Body = res.Status, res.Text
		}
		return "", c.failRefresh(ctx, authErr.Reason, authErr)
	case err != nil:
		return "", c.failRefresh(ctx, "token refresh failed", err)
	}

	var payload refreshResponse
	if err := res.Decode(&payload); err != nil || payload.Access == "" {
		authErr := &AuthError{Status: res.Status, Reason: "invalid refresh response", Err: err}
		if res.Kind == PayloadJSON {
			authErr.Body = res.JSON
		} else {
			authErr.Body = res.Text
		}
		return "", c.failRefresh(ctx, authErr.Reason, authErr)
	}

	if err := c.session.SetAccessToken(ctx, payload.Access); err != nil {
		return "", c.failRefresh(ctx, "store refreshed access token", fmt.Errorf("store refreshed access token: %w", err))
	}

	c.metrics.ObserveRefresh(metrics.RefreshSuccess)
	c.logger.Info(ctx, "access token refreshed")
	return payload.Access, nil
}

// failRefresh drops the session so the user is sent back to login, then
// returns err unchanged so its kind survives.
func (c *Client) failRefresh(ctx context.Context, reason string, err error) error {
	c.metrics.ObserveRefresh(metrics.RefreshFailure)
	c.logger.Warn(ctx, "token refresh failed, clearing session", "reason", reason, "error", err)
	if clearErr := c.session.Clear(ctx); clearErr != nil {
		c.logger.Error(ctx, "failed to clear session", "error", clearErr)
	}
	return err
}
