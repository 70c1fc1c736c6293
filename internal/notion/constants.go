package notion

import "time"

// API paths
const (
	PathOAuthToken    = "/v1/oauth/token"
	PathSearch        = "/v1/search"
	PathDatabase      = "/v1/databases/%s"
	PathDatabaseQuery = "/v1/databases/%s/query"
)

// Headers
const (
	HeaderNotionVersion = "Notion-Version"
	HeaderContentType   = "Content-Type"
	ContentTypeJSON     = "application/json"
)

// Client defaults
const (
	DefaultTimeout    = 15 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 500 * time.Millisecond
	PageSize          = 100
	MaxQueryPages     = 100 // upper bound on pagination rounds for one query
)

// Property defaults used when the service creates properties
const (
	DefaultStatusPropertyName     = "상태"
	DefaultDifficultyPropertyName = "업무난이도"
	UntitledDatabase              = "Untitled"
)

// DefaultDifficultyOptions are created with a new difficulty select property
var DefaultDifficultyOptions = []string{"상", "중", "하", "즉시처리"}

// Log messages
const (
	LogMsgRetrying       = "Retrying Notion request"
	LogMsgRequestFailed  = "Notion request failed"
	LogMsgServerError    = "Notion server error, will retry"
	LogMsgQueryTruncated = "Notion query stopped at page limit"
)

// Error messages
const (
	ErrMsgStatus            = "notion returned status %d: %s"
	ErrMsgMaxRetries        = "max retries exceeded"
	ErrMsgUnsupportedType   = "unsupported property type %q"
	ErrMsgMissingCredential = "notion oauth credentials are not configured"
)
