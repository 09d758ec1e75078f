// Package client is the authenticated HTTP layer between the legalwriter
// client and its REST backend.
//
// # Overview
//
// Every backend call goes through (*Client).Dispatch, which:
//  1. for authenticated requests, reads the access token from the session
//     and fails fast with an *AuthError when there is none;
//  2. refreshes the access token proactively when it is inside the expiry
//     safety margin (see RefreshAccessToken), never after a 401;
//  3. encodes the body (JSON, multipart Form, or raw bytes) and sets the
//     Authorization, Content-Type and X-Request-ID headers;
//  4. classifies the response into a *Result or an error.
//
// Concurrent refreshes are collapsed into a single in-flight call.
//
// # Error Handling
//
// Failures surface as exactly one of:
//   - *AuthError     no usable token, or the refresh endpoint refused us
//   - *APIError      any non-2xx response, with status, body and message
//   - *NetworkError  transport failure before a response was read
//
// KindOf maps an error to its ErrorKind for exhaustive switches. The
// sentinels ErrUnauthorized and ErrUnavailable match via errors.Is.
// Nothing is retried automatically; retry policy belongs to the caller.
package client
