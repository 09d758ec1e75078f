// Package config loads runtime configuration for the legalwriter CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: a dotenv file (-env, else ./.env when present) and
//     LEGALWRITER_* variables. Real variables win over the file.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend base URL, e.g. http://localhost:8000
//	-d string   path of the session database
//	-t int      request timeout in seconds (0 disables it)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://legalwriter.example.com",
//	  "api_prefix": "/api",
//	  "session_db": "/home/me/.legalwriter/session.db",
//	  "request_timeout": "30s",
//	  "expiry_margin": "60s",
//	  "refresh_token_ttl": "24h",
//	  "rate_limit": 5,
//	  "rate_burst": 10,
//	  "log_level": "info",
//	  "log_format": "text",
//	  "s3_region": "eu-west-1",
//	  "s3_endpoint": "",
//	  "s3_access_key": "",
//	  "s3_secret_key": ""
//	}
package config
