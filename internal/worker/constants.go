package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for pool operations
const (
	LogMsgWorkerJobFailed = "Worker job failed"
)

// ErrFmtJobPanicked wraps a recovered panic value
const ErrFmtJobPanicked = "job panicked: %v"

// ============================================================================
// Log Messages - Refresh Worker
// ============================================================================

// Log messages for refresh worker operations
const (
	LogMsgRefreshScheduled  = "Experience refresh scheduled"
	LogMsgRefreshRejected   = "Experience refresh rejected, worker is shutting down"
	LogMsgRefreshFailed     = "Experience refresh failed"
	LogMsgRefreshCompleted  = "Experience refresh completed"
	LogMsgUnexpectedPayload = "Unexpected event payload"

	LogMsgRefreshesDropped       = "Pending experience refreshes dropped at shutdown"
	LogMsgRefreshShutdownTimeout = "Running experience refreshes cancelled at shutdown"
)

// ============================================================================
// Log Messages - Sync Job
// ============================================================================

// Log messages for the periodic sync sweep
const (
	LogMsgSyncStarting  = "Sync sweep starting"
	LogMsgSyncCompleted = "Sync sweep completed"
	LogMsgSyncSkipped   = "Sync sweep skipped, previous sweep still running"
)

// DefaultRefreshTimeout bounds a single background refresh
const DefaultRefreshTimeout = 2 * time.Minute
