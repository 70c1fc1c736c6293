package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be non-empty for the server to start
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"JWT_SECRET",
	"NOTION_CLIENT_ID",
	"NOTION_CLIENT_SECRET",
	"NOTION_REDIRECT_URI",
}

// DurationEnvVars are parsed with time.ParseDuration. Load falls back to the
// default on a bad value, so a typo here silently changes behavior.
var DurationEnvVars = []string{
	"DB_MAX_CONN_IDLE_TIME",
	"DB_MAX_CONN_LIFETIME",
	"SYNC_INTERVAL",
	"PROPERTY_CACHE_TTL",
	"REFRESH_DEBOUNCE",
	"REFRESH_COOLDOWN",
}

// recommendedSecretLength is 32 random bytes hex encoded
const recommendedSecretLength = 64

// placeholder values shipped in .env.example
var exampleValues = map[string]string{
	"DB_PASSWORD": "change_this_secure_password",
	"JWT_SECRET":  "generate_with_openssl_rand_hex_32",
}

// ValidateEnv reports every problem that stops the server from starting
func ValidateEnv() error {
	switch v := os.Getenv("ENV_SCHEMA_VERSION"); v {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - add it to your .env file (expected: %s)", ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, v)
	}

	var errs []error
	var missing []string
	for _, key := range RequiredEnvVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", ")))
	}

	if raw := os.Getenv("NOTION_REDIRECT_URI"); raw != "" {
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("NOTION_REDIRECT_URI %q is not an absolute URL", raw))
		}
	}

	return errors.Join(errs...)
}

// ValidateEnvWithWarnings runs ValidateEnv and then looks for settings that work
// but are probably wrong
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, key := range []string{"DB_PASSWORD", "JWT_SECRET"} {
		if os.Getenv(key) == exampleValues[key] {
			warnings = append(warnings, fmt.Sprintf("%s is still the example value - replace it (openssl rand -hex 32)", key))
		}
	}

	if secret := os.Getenv("JWT_SECRET"); secret != exampleValues["JWT_SECRET"] && len(secret) < recommendedSecretLength {
		warnings = append(warnings, fmt.Sprintf("JWT_SECRET is %d characters, %d or more is recommended", len(secret), recommendedSecretLength))
	}

	for _, key := range DurationEnvVars {
		raw := os.Getenv(key)
		if raw == "" {
			continue
		}
		if _, err := time.ParseDuration(raw); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s=%q is not a duration (e.g. 30s, 15m) - the default is used", key, raw))
		}
	}

	if u, err := url.Parse(os.Getenv("NOTION_REDIRECT_URI")); err == nil && u.Scheme == "http" && u.Hostname() != "localhost" && u.Hostname() != "127.0.0.1" {
		warnings = append(warnings, "NOTION_REDIRECT_URI uses plain http - Notion only accepts https outside localhost")
	}

	if os.Getenv("DISCORD_WEBHOOK_URL") == "" {
		warnings = append(warnings, "DISCORD_WEBHOOK_URL is not set - level-up notices are disabled")
	}

	return warnings, nil
}
