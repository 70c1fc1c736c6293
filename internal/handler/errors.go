package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgInvalidSince          = "Invalid since parameter, expected RFC 3339"
	ErrMsgInvalidExperience     = "Experience must be a non-negative integer"
	ErrMsgMissingUserID         = "Missing user id"
	ErrMsgBodyTooLarge          = "Request body too large"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request body"
	LogMsgValidationFailed = "Request failed validation"
)

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError       = "Something went wrong"
	ErrMsgUnknownError             = "Unknown error"
	ErrMsgInvalidRequestError      = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError          = "Authentication failed. Please sign in again."
	ErrMsgPetNotFoundError         = "Pet not found"
	ErrMsgSettingsNotFoundError    = "Settings not found"
	ErrMsgDatabaseNotSelectedError = "Select a task database first"
	ErrMsgXPPropertyNotSetError    = "Select an experience property first"
	ErrMsgNotionNotConnectedError  = "Connect Notion first"
	ErrMsgPropertyNotFoundError    = "Property not found in the selected database"
	ErrMsgPropertyNotSelectError   = "The difficulty property must be a select property"
	ErrMsgOptionNotFoundError      = "Option not found"
	ErrMsgUpstreamError            = "Notion is unavailable. Please try again."
)

// Success messages for API responses
const (
	MsgExperienceRefreshed = "Experience refreshed"
	MsgExperienceUnchanged = "Experience unchanged"
	MsgSettingsSaved       = "Settings saved"
	MsgNotionConnected     = "Notion connected"
	MsgPropertyCreated     = "Property created"
)
