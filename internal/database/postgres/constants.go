package postgres

// Error Messages
const (
	ErrMsgFailedToGetPet         = "failed to get pet"
	ErrMsgFailedToSavePet        = "failed to save pet"
	ErrMsgFailedToGetSettings    = "failed to get settings"
	ErrMsgFailedToSaveSettings   = "failed to save settings"
	ErrMsgFailedToUpdateOrder    = "failed to update difficulty order"
	ErrMsgFailedToListConfigured = "failed to list configured users"
	ErrMsgFailedToGetToken       = "failed to get notion token"
	ErrMsgFailedToSaveToken      = "failed to save notion token"
	ErrMsgFailedToLogEvent       = "failed to log event"
	ErrMsgFailedToGetEvents      = "failed to get events"
	ErrMsgFailedToCleanupEvents  = "failed to clean up events"
	ErrMsgFailedToScanRow        = "failed to scan row"
	ErrMsgRowIterationError      = "row iteration error"
)
