package bootstrap

import "time"

// Session log files
const (
	DirPermission          = 0o755
	LogFilePermission      = 0o644
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"

	// LogFileRetentionCount older sessions survive each start
	LogFileRetentionCount = 9
)

// Background work
const (
	JobNameSync          = "experience-sync"
	JobNameEventCleanup  = "event-cleanup"
	EventCleanupInterval = 24 * time.Hour
	WorkerQueueSize      = 16

	// ShutdownTimeout bounds the whole graceful stop after a signal
	ShutdownTimeout = 30 * time.Second
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingApp         = "Starting NotionPet"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"

	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	LogMsgStreamSubscriberRegistered = "Stream subscriber registered"
	LogMsgDiscordNotifierEnabled     = "Discord level-up notifications enabled"
	LogMsgDiscordNotifierDisabled    = "Discord webhook not configured, level-up notifications disabled"
	LogMsgRefreshWorkerRegistered    = "Refresh-on-save worker registered"

	LogMsgBackgroundJobsStarted = "Background jobs started"
	LogMsgNotionNotConfigured   = "Notion OAuth credentials missing, connect will fail until they are set"
	LogMsgMigrationsApplied     = "Database migrations applied"

	LogMsgShutdownSignal       = "Shutdown signal received"
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgWorkerShutdownFailed = "Refresh worker shutdown failed"
)

const (
	ErrMsgFailedRegisterMetrics = "failed to register metrics collector"
	ErrMsgFailedCreateNotifier  = "failed to create discord notifier"
	ErrMsgFailedConnectDB       = "failed to connect to database"
	ErrMsgFailedMigrate         = "failed to apply migrations"
)
