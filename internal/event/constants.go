package event

// EventSchemaVersion is stamped on every event this package constructs
const EventSchemaVersion = "1.0"

// Error message formats
const (
	ErrMsgHandlersFailed = "%d of %d handlers failed for %s: %w"
	ErrMsgNilPayload     = "event payload is nil, want %T"
	ErrMsgDecodePayload  = "decode event payload into %T: %w"
)
