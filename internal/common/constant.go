// Package common contains shared constants and sentinel errors used across
// the legalwriter client packages.
package common

// Header names and values attached to outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
	RequestIDHeaderName     = "X-Request-ID"
	ContentTypeHeaderName   = "Content-Type"
	AcceptHeaderName        = "Accept"

	ContentTypeJSON = "application/json"
)

// Names under which the session tokens are persisted.
const (
	AccessTokenName  = "access_token"
	RefreshTokenName = "refresh_token"
)
