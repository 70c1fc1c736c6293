package eventlog

// JSON payload field keys
const (
	PayloadKeyTotalExp  = "total_exp"
	PayloadKeyLevel     = "level"
	PayloadKeyRebirths  = "rebirth_count"
	PayloadKeyPageCount = "page_count"
)

// History limits
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// DefaultRetentionDays is how long logged events are kept
const DefaultRetentionDays = 90

// Log messages - service events
const (
	LogMsgPayloadUnreadable = "Event payload unreadable, skipping log"
	LogMsgFailedToLogEvent  = "Failed to log event to database"
	LogMsgEventLogged       = "Event logged to database"
)

// Log messages - retention job
const (
	LogMsgRetentionFailed      = "Pruning event history failed"
	LogMsgRetentionNothingToDo = "Event history has nothing past retention"
	LogMsgRetentionPruned      = "Pruned event history"
)

// Log field keys - structured logging fields
const (
	LogFieldType          = "type"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retention_days"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deleted_count"
	LogFieldCutoff        = "cutoff"
)

// Error messages
const (
	ErrMsgFailedToGetHistory = "failed to get event history"
	ErrMsgFailedToCleanup    = "failed to clean up events"
)
