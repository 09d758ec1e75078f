package config

import (
	"errors"
	"io/fs"

	"github.com/dmitrijs2005/legalwriter/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "LEGALWRITER"

const defaultEnvFile = ".env"

// parseEnv overlays Config with LEGALWRITER_* variables. A dotenv file is
// loaded first; it never overrides variables already set in the process.
//
// The file comes from -env; without the flag ./.env is used if it exists.
func parseEnv(cfg *Config, args []string) error {
	if path := flagx.EnvFileFlag(args); path != "" {
		if err := godotenv.Load(path); err != nil {
			return err
		}
	} else if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if v.IsSet("api_base_url") {
		cfg.APIBaseURL = v.GetString("api_base_url")
	}
	if v.IsSet("api_prefix") {
		cfg.APIPrefix = v.GetString("api_prefix")
	}
	if v.IsSet("session_db") {
		cfg.SessionDBPath = v.GetString("session_db")
	}
	if v.IsSet("request_timeout") {
		cfg.RequestTimeout = v.GetDuration("request_timeout")
	}
	if v.IsSet("expiry_margin") {
		cfg.ExpiryMargin = v.GetDuration("expiry_margin")
	}
	if v.IsSet("refresh_token_ttl") {
		cfg.RefreshTokenTTL = v.GetDuration("refresh_token_ttl")
	}
	if v.IsSet("rate_limit") {
		cfg.RateLimit = v.GetFloat64("rate_limit")
	}
	if v.IsSet("rate_burst") {
		cfg.RateBurst = v.GetInt("rate_burst")
	}
	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
	if v.IsSet("log_format") {
		cfg.LogFormat = v.GetString("log_format")
	}
	if v.IsSet("s3_region") {
		cfg.S3Region = v.GetString("s3_region")
	}
	if v.IsSet("s3_endpoint") {
		cfg.S3Endpoint = v.GetString("s3_endpoint")
	}
	if v.IsSet("s3_access_key") {
		cfg.S3AccessKey = v.GetString("s3_access_key")
	}
	if v.IsSet("s3_secret_key") {
		cfg.S3SecretKey = v.GetString("s3_secret_key")
	}
	return nil
}
