// Package session holds the client's authentication state: the short-lived
// access token and the longer-lived refresh token.
//
// A Manager is constructed explicitly and injected wherever tokens are
// needed. Init hydrates it from the persistent store on startup; Clear
// wipes both tokens (logout, failed refresh) and notifies OnClear hooks,
// which the CLI uses to send the user back to the login prompt.
//
// The refresh token is persisted with an absolute expiry (one day by
// default) and is ignored once that passes. The access token is persisted
// without one: its own exp claim governs it.
//
// A Manager is safe for concurrent use.
package session
