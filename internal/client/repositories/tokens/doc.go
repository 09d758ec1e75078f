// Package tokens persists the session's bearer tokens in the local SQLite
// database so a restarted client can resume the session.
//
// Each token is stored under a name (see common.AccessTokenName and
// common.RefreshTokenName) with an optional absolute expiry. Get returns
// (nil, nil) for an unknown name; expiry is recorded, not enforced here.
package tokens
