package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	LogDir      string
	Environment string
	ServiceName string
	Version     string

	// Database
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int `validate:"min=1"`
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Identity
	JWTSecret string `validate:"min=16"`
	JWTIssuer string

	// Notion integration
	NotionClientID     string
	NotionClientSecret string
	NotionRedirectURI  string
	NotionAPIURL       string `validate:"url"`
	NotionVersion      string

	// Experience sync
	SyncInterval      time.Duration
	SyncWorkers       int `validate:"min=1"`
	SyncConcurrency   int `validate:"min=1"`
	CompletedStatuses []string

	// Property cache
	PropertyCacheSize int `validate:"min=1"`
	PropertyCacheTTL  time.Duration

	// Event history
	EventRetentionDays int `validate:"min=1"`

	// Delay before experience is recomputed after settings change
	RefreshDebounce time.Duration

	// Minimum spacing of manual refreshes per user, zero disables
	RefreshCooldown time.Duration

	DiscordWebhookURL string `validate:"omitempty,url"`
	TrustedProxies    []string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", DefaultJWTIssuer),

		NotionClientID:     getEnv("NOTION_CLIENT_ID", ""),
		NotionClientSecret: getEnv("NOTION_CLIENT_SECRET", ""),
		NotionRedirectURI:  getEnv("NOTION_REDIRECT_URI", ""),
		NotionAPIURL:       getEnv("NOTION_API_URL", DefaultNotionAPIURL),
		NotionVersion:      getEnv("NOTION_VERSION", DefaultNotionVersion),

		SyncInterval:      getEnvAsDuration("SYNC_INTERVAL", DefaultSyncInterval),
		SyncWorkers:       getEnvAsInt("SYNC_WORKERS", DefaultSyncWorkers),
		SyncConcurrency:   getEnvAsInt("SYNC_CONCURRENCY", DefaultSyncConcurrency),
		CompletedStatuses: getEnvAsList("COMPLETED_STATUSES", DefaultCompletedStatuses),

		PropertyCacheSize: getEnvAsInt("PROPERTY_CACHE_SIZE", DefaultPropertyCacheSize),
		PropertyCacheTTL:  getEnvAsDuration("PROPERTY_CACHE_TTL", DefaultPropertyCacheTTL),

		EventRetentionDays: getEnvAsInt("EVENT_RETENTION_DAYS", DefaultEventRetentionDays),
		RefreshDebounce:    getEnvAsDuration("REFRESH_DEBOUNCE", DefaultRefreshDebounce),
		RefreshCooldown:    getEnvAsDuration("REFRESH_COOLDOWN", DefaultRefreshCooldown),

		DiscordWebhookURL: getEnv("DISCORD_WEBHOOK_URL", ""),
		TrustedProxies:    getEnvAsList("TRUSTED_PROXIES", nil),
	}
	cfg.readDatabase()

	port, err := strconv.Atoi(getEnv("PORT", DefaultPort))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf(ErrMsgJWTSecretMissing)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadDatabase reads only the DB_* settings, for tools that never serve traffic
func LoadDatabase() *Config {
	_ = godotenv.Load()
	cfg := &Config{}
	cfg.readDatabase()
	return cfg
}

func (c *Config) readDatabase() {
	c.DBUser = getEnv("DB_USER", "postgres")
	c.DBPassword = getEnv("DB_PASSWORD", "postgres")
	c.DBHost = getEnv("DB_HOST", "localhost")
	c.DBPort = getEnv("DB_PORT", "5432")
	c.DBName = getEnv("DB_NAME", DefaultDBName)
	c.DBMaxConns = getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns)
	c.DBMaxConnIdleTime = getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime)
	c.DBMaxConnLifetime = getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping blank entries
func getEnvAsList(key string, defaultValue []string) []string {
	raw, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(raw) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL URL of the service database
func (c *Config) GetDBConnString() string {
	return c.connString(c.DBName)
}

// MaintenanceConnString points at the server's "postgres" database, used to
// create the service database
func (c *Config) MaintenanceConnString() string {
	return c.connString(maintenanceDBName)
}

func (c *Config) connString(dbName string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + dbName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// NotionConfigured reports whether OAuth credentials for Notion are present
func (c *Config) NotionConfigured() bool {
	return c.NotionClientID != "" && c.NotionClientSecret != ""
}
