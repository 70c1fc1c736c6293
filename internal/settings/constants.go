package settings

import "time"

// Property cache defaults
const (
	DefaultPropertyCacheSize = 256
	DefaultPropertyCacheTTL  = 5 * time.Minute
)

// PropertiesFetchTimeout bounds a shared schema fetch
const PropertiesFetchTimeout = 15 * time.Second

// CacheSchemaVersion is bumped when the cached property structure changes
const CacheSchemaVersion = "1"

// Log messages
const (
	LogMsgSettingsSaved       = "Settings saved"
	LogMsgOrderReconciled     = "Difficulty order reconciled"
	LogMsgOptionsUpdated      = "Difficulty options updated"
	LogMsgPropertyCreated     = "Property created"
	LogMsgNotionConnected     = "Notion workspace connected"
	LogMsgPublishFailed       = "Failed to publish event"
	LogMsgPropertiesCacheMiss = "Property schema cache miss"
)

// Error messages
const (
	ErrMsgCodeRequired          = "authorization code is required"
	ErrMsgOptionNameRequired    = "option name is required"
	ErrMsgOptionExists          = "option %q already exists"
	ErrMsgOptionIDRequired      = "option id is required"
	ErrMsgDifficultyNotSet      = "difficulty property not configured"
	ErrMsgXPPropertyType        = "property %q must be a number or formula property"
	ErrMsgStatusPropertyType    = "property %q must be a status property"
	ErrMsgUnknownPropertyType   = "unsupported property type %q"
	ErrMsgUnknownOptionAction   = "unsupported option action %q"
	ErrMsgFailedToGetSettings   = "failed to get settings"
	ErrMsgFailedToSaveSettings  = "failed to save settings"
	ErrMsgFailedToSaveOrder     = "failed to save difficulty order"
	ErrMsgFailedToGetToken      = "failed to get notion token"
	ErrMsgFailedToSaveToken     = "failed to save notion token"
	ErrMsgFailedToGetProperties = "failed to get properties"
)
