package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/legalwriter/internal/flagx"
	"github.com/dmitrijs2005/legalwriter/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from a zero value, so a partial file only
// overrides what it names.
type JsonConfig struct {
	APIBaseURL      *string         `json:"api_base_url"`
	APIPrefix       *string         `json:"api_prefix"`
	SessionDBPath   *string         `json:"session_db"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	ExpiryMargin    *timex.Duration `json:"expiry_margin"`
	RefreshTokenTTL *timex.Duration `json:"refresh_token_ttl"`
	RateLimit       *float64        `json:"rate_limit"`
	RateBurst       *int            `json:"rate_burst"`
	LogLevel        *string         `json:"log_level"`
	LogFormat       *string         `json:"log_format"`
	S3Region        *string         `json:"s3_region"`
	S3Endpoint      *string         `json:"s3_endpoint"`
	S3AccessKey     *string         `json:"s3_access_key"`
	S3SecretKey     *string         `json:"s3_secret_key"`
}

// parseJSON overlays Config with values from the file named by -c/-config.
// Without the flag it does nothing.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.APIPrefix, jc.APIPrefix)
	setString(&cfg.SessionDBPath, jc.SessionDBPath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ExpiryMargin != nil {
		cfg.ExpiryMargin = jc.ExpiryMargin.Duration
	}
	if jc.RefreshTokenTTL != nil {
		cfg.RefreshTokenTTL = jc.RefreshTokenTTL.Duration
	}
	if jc.RateLimit != nil {
		cfg.RateLimit = *jc.RateLimit
	}
	if jc.RateBurst != nil {
		cfg.RateBurst = *jc.RateBurst
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
