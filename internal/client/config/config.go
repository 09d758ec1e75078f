package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/legalwriter/internal/logging"
)

// Config holds runtime settings for the legalwriter CLI.
type Config struct {
	APIBaseURL      string
	APIPrefix       string
	SessionDBPath   string
	RequestTimeout  time.Duration
	ExpiryMargin    time.Duration
	RefreshTokenTTL time.Duration
	// RateLimit is requests per second; 0 disables client-side throttling.
	RateLimit float64
	RateBurst int
	LogLevel  string
	LogFormat string
	S3Region  string
	// S3Endpoint overrides the S3 endpoint, for MinIO and similar.
	S3Endpoint string
	// Static S3 credentials; empty means the default AWS chain.
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.APIPrefix = "/api"
	c.SessionDBPath = "legalwriter.db"
	c.RequestTimeout = 30 * time.Second
	c.ExpiryMargin = 60 * time.Second
	c.RefreshTokenTTL = 24 * time.Hour
	c.RateLimit = 0
	c.RateBurst = 1
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.S3Region = "us-east-1"
	c.S3Endpoint = ""
	c.S3AccessKey = ""
	c.S3SecretKey = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment, a JSON file and command-line flags taken from args
// (os.Args[1:] in production). Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BaseURL is the backend root with the API prefix appended.
func (c *Config) BaseURL() string {
	prefix := strings.Trim(c.APIPrefix, "/")
	base := strings.TrimRight(c.APIBaseURL, "/")
	if prefix == "" {
		return base
	}
	return base + "/" + prefix
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid api base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api base url %q: want http(s)://host[:port]", c.APIBaseURL)
	}
	if c.RequestTimeout < 0 || c.ExpiryMargin < 0 || c.RefreshTokenTTL < 0 {
		return errors.New("durations must not be negative")
	}
	if c.RateLimit < 0 {
		return errors.New("rate limit must not be negative")
	}
	if c.RateBurst < 1 {
		c.RateBurst = 1
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
