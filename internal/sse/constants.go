package sse

import "time"

const (
	// OutboxSize bounds events waiting for the delivery goroutine
	OutboxSize = 100

	// ClientEventBuffer is how many events one slow tab may fall behind
	ClientEventBuffer = 50
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Event types for SSE
const (
	// EventTypeConnected is the first event on every stream
	EventTypeConnected = "connected"

	// EventTypePetUpdated carries the refreshed pet card
	EventTypePetUpdated = "pet.updated"

	// EventTypeLevelUp is sent when the pet gains a level or is reborn
	EventTypeLevelUp = "pet.level_up"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// QueryParamTypes filters a stream to a comma separated list of event types
const QueryParamTypes = "types"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventDropped       = "SSE event dropped, buffer full"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscribed         = "SSE subscriber registered for event types"
	LogMsgInvalidPayload     = "Invalid SSE event payload"
)

// Error messages
const (
	ErrMsgStreamingUnsupported = "SSE not supported"
	ErrMsgHubStopped           = "event stream is shutting down"
)
