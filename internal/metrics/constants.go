package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameExperienceRefreshes = "pet_experience_refreshes_total"
	MetricNamePetLevelUps         = "pet_level_ups_total"
	MetricNamePetRebirths         = "pet_rebirths_total"
	MetricNamePetLevel            = "pet_level"
	MetricNameSettingsSaved       = "settings_saved_total"
	MetricNameSyncDuration        = "pet_sync_duration_seconds"
	MetricNameSyncUsers           = "pet_sync_users_total"
)

// Task database metric names
const (
	MetricNameNotionRequestDuration = "notion_request_duration_seconds"
	MetricNameNotionRetries         = "notion_request_retries_total"
	MetricNamePropertyCache         = "property_cache_lookups_total"
)

// Stream metric names
const (
	MetricNameSSEClients = "sse_clients"
)

// Background job metric names
const (
	MetricNameJobRuns     = "background_job_runs_total"
	MetricNameJobDuration = "background_job_duration_seconds"
	MetricNameJobsDropped = "background_jobs_dropped_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextExperienceRefreshes = "Total number of experience recomputations by outcome"
	HelpTextPetLevelUps         = "Total number of pet level-ups by source"
	HelpTextPetRebirths         = "Total number of pet rebirths"
	HelpTextPetLevel            = "Distribution of pet levels after a refresh"
	HelpTextSettingsSaved       = "Total number of settings saves"
	HelpTextSyncDuration        = "Duration of a full sync sweep in seconds"
	HelpTextSyncUsers           = "Total number of users processed by sync sweeps by outcome"
)

// Task database metric help text
const (
	HelpTextNotionRequestDuration = "Notion API request latency in seconds"
	HelpTextNotionRetries         = "Total number of retried Notion API requests"
	HelpTextPropertyCache         = "Property schema cache lookups by result"
)

// Stream metric help text
const (
	HelpTextSSEClients = "Current number of connected SSE clients"
)

// Background job metric help text
const (
	HelpTextJobRuns     = "Background job executions by job and outcome"
	HelpTextJobDuration = "Background job execution time in seconds"
	HelpTextJobsDropped = "Background jobs rejected because the queue was full or stopping"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelOutcome = "outcome"
	LabelSource  = "source"
	LabelResult  = "result"
	LabelJob     = "job"
)

// Label values
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	CacheHit       = "hit"
	CacheMiss      = "miss"
	SourceUnknown  = "unknown"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, ranging from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// UpstreamLatencyBuckets covers Notion calls, which include retries with backoff
var UpstreamLatencyBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 40}

// LevelBuckets has one bucket per pet level
var LevelBuckets = []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Unexpected event payload"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
