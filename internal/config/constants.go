package config

import "time"

// Defaults
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultEnvironment = "dev"
	DefaultServiceName = "notion-pet"
	DefaultVersion     = "dev"
	DefaultDBName      = "notionpet"
	maintenanceDBName  = "postgres"
	DefaultJWTIssuer   = "notion-pet"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultNotionAPIURL  = "https://api.notion.com"
	DefaultNotionVersion = "2022-06-28"

	DefaultSyncInterval    = 15 * time.Minute
	DefaultSyncWorkers     = 2
	DefaultSyncConcurrency = 4

	DefaultPropertyCacheSize = 256
	DefaultPropertyCacheTTL  = 5 * time.Minute

	DefaultEventRetentionDays = 90
	DefaultRefreshDebounce    = 3 * time.Second
	DefaultRefreshCooldown    = 30 * time.Second
)

// DefaultCompletedStatuses are the status names that count a page as done
var DefaultCompletedStatuses = []string{"완료", "Done", "Complete", "Completed"}

// Error messages
const (
	ErrMsgJWTSecretMissing = "JWT_SECRET environment variable must be set for security"
)
