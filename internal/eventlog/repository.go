package eventlog

import (
	"context"
	"time"
)

// Event is one entry of a user's pet history
type Event struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	UserID    string                 `json:"user_id"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// Record is an entry about to be appended; the store assigns ID and CreatedAt
type Record struct {
	EventType string
	UserID    string
	Payload   map[string]interface{}
	Metadata  map[string]interface{}
}

// EventFilter selects entries of one user
type EventFilter struct {
	UserID    string
	EventType string // empty for all types
	Since     *time.Time
	Limit     int // zero for no limit
}

// Repository stores the history
type Repository interface {
	Append(ctx context.Context, rec Record) error

	// List returns matching entries newest first
	List(ctx context.Context, filter EventFilter) ([]Event, error)

	// DeleteBefore removes entries created before cutoff and reports how many went
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
