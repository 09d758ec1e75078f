// Package auth answers questions about bearer tokens locally, without a
// round trip to the backend.
package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/legalwriter/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiryMargin is how long before its real expiry a token is
// already treated as expired.
const DefaultExpiryMargin = 60 * time.Second

// Inspector decodes the exp claim of a JWT without verifying its signature.
// The signature is the backend's business; the client only needs to know
// whether sending the token is still worthwhile.
type Inspector struct {
	margin time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

type Option func(*Inspector)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(i *Inspector) { i.now = now }
}

func NewInspector(margin time.Duration, opts ...Option) *Inspector {
	if margin < 0 {
		margin = 0
	}
	i := &Inspector{
		margin: margin,
		now:    time.Now,
		parser: jwt.NewParser(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Margin returns the configured safety margin.
func (i *Inspector) Margin() time.Duration {
	return i.margin
}

// ExpiresAt returns the token's exp claim.
func (i *Inspector) ExpiresAt(token string) (time.Time, error) {
	if token == "" {
		return time.Time{}, common.ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("%w: missing exp claim", common.ErrInvalidToken)
	}
	return exp.Time, nil
}

// IsExpired reports whether token expires within the safety margin. Absent,
// undecodable and exp-less tokens all count as expired.
func (i *Inspector) IsExpired(token string) bool {
	exp, err := i.ExpiresAt(token)
	if err != nil {
		return true
	}
	return !exp.After(i.now().Add(i.margin))
}
