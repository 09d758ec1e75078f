package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/legalwriter/internal/client/metrics"
	"github.com/dmitrijs2005/legalwriter/internal/common"
)

const maxResponseBytes = 32 << 20

// Dispatch performs req against the backend. Authenticated requests get a
// valid access token first, refreshing it when it is about to expire.
// A 401 from the backend is returned as an *APIError and never retried.
func (c *Client) Dispatch(ctx context.Context, req Request) (*Result, error) {
	requestID := c.newRequestID()
	start := time.Now()

	res, err := c.dispatch(ctx, req, requestID)
	c.metrics.ObserveRequest(req.Method, outcomeOf(res, err), time.Since(start))

	if err != nil {
		args := []any{"method", req.Method, "endpoint", req.Path, "request_id", requestID, "error", err}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			args = append(args, "status", apiErr.Status)
		}
		c.logger.Error(ctx, "api request failed", args...)
		return nil, err
	}

	c.logger.Debug(ctx, "api request", "method", req.Method, "endpoint", req.Path, "request_id", requestID, "status", res.Status)
	return res, nil
}

func (c *Client) dispatch(ctx context.Context, req Request, requestID string) (*Result, error) {
	var token string
	if !req.Public {
		t, err := c.authorize(ctx)
		if err != nil {
			return nil, err
		}
		token = t
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	httpReq, err := c.newHTTPRequest(ctx, req, token, requestID)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Method: req.Method, Endpoint: req.Path, Err: err}
	}
	defer resp.Body.Close()

	return classify(req, resp)
}

// authorize returns an access token fit for use, refreshing it if needed.
func (c *Client) authorize(ctx context.Context) (string, error) {
	token, ok := c.session.AccessToken()
	if !ok {
		return "", &AuthError{Status: http.StatusUnauthorized, Reason: "no access token available"}
	}
	if c.checker.IsExpired(token) {
		return c.RefreshAccessToken(ctx)
	}
	return token, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req Request, token, requestID string) (*http.Request, error) {
	body, bodyContentType, jsonish, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", req.Method, req.Path, err)
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	switch {
	case bodyContentType != "":
		httpReq.Header.Set(common.ContentTypeHeaderName, bodyContentType)
	case jsonish && !req.SkipContentType:
		httpReq.Header.Set(common.ContentTypeHeaderName, common.ContentTypeJSON)
	}
	if httpReq.Header.Get(common.AcceptHeaderName) == "" {
		httpReq.Header.Set(common.AcceptHeaderName, common.ContentTypeJSON)
	}
	if token != "" {
		httpReq.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	httpReq.Header.Set(common.RequestIDHeaderName, requestID)

	return httpReq, nil
}

func classify(req Request, resp *http.Response) (*Result, error) {
	if resp.StatusCode == http.StatusNoContent {
		return &Result{Status: resp.StatusCode, Kind: PayloadNone}, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Method: req.Method, Endpoint: req.Path, Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(req.Method, req.Path, resp.StatusCode, body)
	}

	if isJSON(resp.Header.Get(common.ContentTypeHeaderName)) {
		if !json.Valid(body) {
			// the raw reply goes back with the error for callers that report it
			return &Result{Status: resp.StatusCode, Kind: PayloadText, Text: string(body)},
				fmt.Errorf("%w: %s %s returned invalid JSON", ErrMalformedResponse, req.Method, req.Path)
		}
		return &Result{Status: resp.StatusCode, Kind: PayloadJSON, JSON: json.RawMessage(body)}, nil
	}
	return &Result{Status: resp.StatusCode, Kind: PayloadText, Text: string(body)}, nil
}

func newAPIError(method, endpoint string, status int, body []byte) *APIError {
	apiErr := &APIError{Method: method, Endpoint: endpoint, Status: status}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err == nil {
		apiErr.Body = decoded
	} else if len(body) > 0 {
		apiErr.Body = string(body)
	}

	apiErr.Message = errorMessage(decoded)
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed with status %d", status)
	}
	return apiErr
}

// errorMessage picks the human readable message out of an error document.
func errorMessage(doc any) string {
	m, ok := doc.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"detail", "message"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == common.ContentTypeJSON || strings.HasSuffix(mediaType, "+json")
}

func outcomeOf(res *Result, err error) string {
	if err == nil {
		return metrics.StatusOutcome(res.Status)
	}
	switch KindOf(err) {
	case KindAPI:
		var apiErr *APIError
		errors.As(err, &apiErr)
		return metrics.StatusOutcome(apiErr.Status)
	case KindAuth:
		return metrics.OutcomeAuth
	case KindNetwork:
		return metrics.OutcomeNetwork
	default:
		return "error"
	}
}
