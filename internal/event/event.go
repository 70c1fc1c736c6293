package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Pet event types
const (
	PetUpdated    Type = "pet.updated"
	PetLeveledUp  Type = "pet.leveled_up"
	SettingsSaved Type = "settings.saved"
)

// Metadata keys
const (
	MetadataSource = "source"
)

// Event sources
const (
	SourceManual    = "manual"
	SourceScheduled = "scheduled"
)

// PetUpdatedPayloadV1 is the typed payload for pet update events
type PetUpdatedPayloadV1 struct {
	UserID string         `json:"user_id"`
	Card   domain.PetCard `json:"card"`
}

// PetLeveledUpPayloadV1 is the typed payload for level-up and rebirth events
type PetLeveledUpPayloadV1 struct {
	UserID      string `json:"user_id"`
	TotalExp    int64  `json:"total_exp"`
	OldLevel    int    `json:"old_level"`
	NewLevel    int    `json:"new_level"`
	OldRebirths int64  `json:"old_rebirths"`
	NewRebirths int64  `json:"new_rebirths"`
	Timestamp   int64  `json:"timestamp"`
}

// SettingsSavedPayloadV1 is the typed payload for settings changes
type SettingsSavedPayloadV1 struct {
	UserID               string `json:"user_id"`
	DatabaseID           string `json:"database_id"`
	OrderChanged         bool   `json:"order_changed"`
	ExperienceConfigured bool   `json:"experience_configured"`
}

// Type-safe event constructors

// NewPetUpdatedEvent creates a pet update event carrying the fresh card
func NewPetUpdatedEvent(card domain.PetCard, source string) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     PetUpdated,
		Payload:  PetUpdatedPayloadV1{UserID: card.UserID, Card: card},
		Metadata: Metadata{MetadataSource: source},
	}
}

// NewPetLeveledUpEvent creates a level-up event from an experience summary
func NewPetLeveledUpEvent(summary domain.ExperienceSummary, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PetLeveledUp,
		Payload: PetLeveledUpPayloadV1{
			UserID:      summary.UserID,
			TotalExp:    summary.TotalExp,
			OldLevel:    summary.OldLevel,
			NewLevel:    summary.NewLevel,
			OldRebirths: summary.OldRebirths,
			NewRebirths: summary.NewRebirths,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: Metadata{MetadataSource: source},
	}
}

// NewSettingsSavedEvent creates a settings change event from the saved settings
func NewSettingsSavedEvent(settings domain.Settings, orderChanged bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SettingsSaved,
		Payload: SettingsSavedPayloadV1{
			UserID:               settings.UserID,
			DatabaseID:           settings.SelectedDBID,
			OrderChanged:         orderChanged,
			ExperienceConfigured: settings.SelectedDBID != "" && settings.XPPropertyName != "",
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously
// and every handler runs even when an earlier one fails.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(ErrMsgHandlersFailed, len(errs), len(handlers), event.Type, errors.Join(errs...))
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
