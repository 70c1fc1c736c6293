package scheduler

// Log messages
const (
	LogMsgJobScheduled = "Job scheduled"
	LogMsgTickSkipped  = "Scheduled tick skipped"
)

// Error messages
const (
	ErrFmtBadInterval = "job %q: interval must be positive, got %s"
	ErrFmtDuplicate   = "job %q is already scheduled"
)
