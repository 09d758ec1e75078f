package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed response")
)

// ErrorKind discriminates the failures returned by Dispatch.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindAuth
	KindAPI
	KindNetwork
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAuth:
		return "auth"
	case KindAPI:
		return "api"
	case KindNetwork:
		return "network"
	default:
		return "other"
	}
}

// KindOf classifies err. Wrapped errors are unwrapped.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return KindAuth
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return KindAPI
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	return KindOther
}

// APIError is a non-2xx backend response. Body holds the decoded JSON
// error document, the raw text when it was not JSON, or nil when empty.
// Message is never empty.
type APIError struct {
	Method   string
	Endpoint string
	Status   int
	Body     any
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s %s: %d: %s", e.Method, e.Endpoint, e.Status, e.Message)
}

// Is lets 401 and 403 responses match ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// AuthError means the request could not be authenticated: no token, or the
// refresh endpoint refused to mint a new one. The session has been cleared
// by the time a refresh-related AuthError is returned.
type AuthError struct {
	Status int
	Reason string
	Body   any
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s (%d): %v", e.Reason, e.Status, e.Err)
	}
	return fmt.Sprintf("auth: %s (%d)", e.Reason, e.Status)
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool { return target == ErrUnauthorized }

// NetworkError is a transport-level failure: DNS, connection refused,
// timeout, or a response body that could not be read.
type NetworkError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %s %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrUnavailable }
