package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/dmitrijs2005/legalwriter/internal/client/metrics"
	"github.com/dmitrijs2005/legalwriter/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single HTTP exchange when Config.Timeout is unset.
const DefaultTimeout = 30 * time.Second

// RefreshPath is the token refresh endpoint, relative to the base URL.
const RefreshPath = "/token/refresh/"

// Session is the token store the client reads and updates.
type Session interface {
	AccessToken() (string, bool)
	RefreshToken() (string, bool)
	SetAccessToken(ctx context.Context, access string) error
	Clear(ctx context.Context) error
}

// ExpiryChecker decides whether an access token must be refreshed before use.
type ExpiryChecker interface {
	IsExpired(token string) bool
}

type Config struct {
	// BaseURL is the backend root including the API prefix,
	// e.g. "http://localhost:8000/api".
	BaseURL string
	Timeout time.Duration

	Session Session
	Checker ExpiryChecker

	// Optional.
	HTTPClient   *http.Client
	Logger       logging.Logger
	Metrics      *metrics.Metrics
	Limiter      *rate.Limiter
	NewRequestID func() string
}

type Client struct {
	baseURL      string
	http         *http.Client
	session      Session
	checker      ExpiryChecker
	logger       logging.Logger
	metrics      *metrics.Metrics
	limiter      *rate.Limiter
	newRequestID func() string
	refreshGroup singleflight.Group
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("client: base URL is required")
	}
	if cfg.Session == nil || cfg.Checker == nil {
		return nil, errors.New("client: session and expiry checker are required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		// the jar carries backend cookies across calls
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		httpClient = &http.Client{Timeout: timeout, Jar: jar}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	newID := cfg.NewRequestID
	if newID == nil {
		newID = uuid.NewString
	}

	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		http:         httpClient,
		session:      cfg.Session,
		checker:      cfg.Checker,
		logger:       logger,
		metrics:      cfg.Metrics,
		limiter:      cfg.Limiter,
		newRequestID: newID,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}
