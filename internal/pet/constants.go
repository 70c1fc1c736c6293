package pet

// DefaultSyncConcurrency bounds concurrent refreshes during a sync sweep
const DefaultSyncConcurrency = 4

// Log messages
const (
	LogMsgExperienceRefreshed = "Experience refreshed"
	LogMsgDifficultyFallback  = "Difficulty order unavailable, using stored order"
	LogMsgSyncUserFailed      = "Sync failed for user"
	LogMsgSyncFinished        = "Sync sweep finished"
	LogMsgPublishFailed       = "Failed to publish event"
)

// Error messages
const (
	ErrMsgFailedToGetPet      = "failed to get pet"
	ErrMsgFailedToSavePet     = "failed to save pet"
	ErrMsgFailedToGetSettings = "failed to get settings"
	ErrMsgFailedToGetToken    = "failed to get notion token"
	ErrMsgFailedToQueryPages  = "failed to query pages"
	ErrMsgFailedToListUsers   = "failed to list configured users"
	ErrMsgSyncFailures        = "sync failed for %d of %d users"
)
