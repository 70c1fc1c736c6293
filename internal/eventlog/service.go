// Package eventlog keeps a per-user history of pet events for the history view.
package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/osse101/NotionPet_Go/internal/event"
	"github.com/osse101/NotionPet_Go/internal/logger"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger for pet and settings events
	Subscribe(bus event.Bus)

	// History returns a user's logged events newest first. An empty eventType returns all types.
	History(ctx context.Context, userID, eventType string, since *time.Time, limit int) ([]Event, error)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// Subscribe registers event handlers for all logged event types
func (s *service) Subscribe(bus event.Bus) {
	bus.Subscribe(event.PetUpdated, s.handlePetUpdated)
	bus.Subscribe(event.PetLeveledUp, s.handleEvent)
	bus.Subscribe(event.SettingsSaved, s.handleEvent)
}

// handlePetUpdated logs a compact snapshot rather than the whole card
func (s *service) handlePetUpdated(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.PetUpdatedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgPayloadUnreadable, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}
	snapshot := map[string]interface{}{
		PayloadKeyTotalExp:  payload.Card.TotalExp,
		PayloadKeyLevel:     payload.Card.Progression.Level,
		PayloadKeyRebirths:  payload.Card.Progression.RebirthCount,
		PayloadKeyPageCount: payload.Card.PageCount,
	}
	return s.log(ctx, evt, payload.UserID, snapshot)
}

// handleEvent logs the payload as-is
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	payload, err := toMap(evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgPayloadUnreadable, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}
	userID, _ := payload["user_id"].(string)
	return s.log(ctx, evt, userID, payload)
}

func (s *service) log(ctx context.Context, evt event.Event, userID string, payload map[string]interface{}) error {
	log := logger.FromContext(ctx)
	rec := Record{EventType: string(evt.Type), UserID: userID, Payload: payload, Metadata: evt.Metadata}
	if err := s.repo.Append(ctx, rec); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}
	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type)
	return nil
}

// History returns the newest events of a user
func (s *service) History(ctx context.Context, userID, eventType string, since *time.Time, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	events, err := s.repo.List(ctx, EventFilter{
		UserID:    userID,
		EventType: eventType,
		Since:     since,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetHistory, err)
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}

// CleanupOldEvents removes events older than the retention period. Days below one
// fall back to DefaultRetentionDays.
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays < 1 {
		retentionDays = DefaultRetentionDays
	}
	cutoff := s.now().UTC().AddDate(0, 0, -retentionDays)
	n, err := s.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanup, err)
	}
	logger.FromContext(ctx).Debug(LogMsgRetentionPruned, LogFieldCutoff, cutoff, LogFieldDeletedCount, n)
	return n, nil
}

func toMap(payload interface{}) (map[string]interface{}, error) {
	if m, ok := payload.(map[string]interface{}); ok {
		return m, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
