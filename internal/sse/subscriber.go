package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/NotionPet_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.PetUpdated, s.handlePetUpdated)
	s.bus.Subscribe(event.PetLeveledUp, s.handleLevelUp)

	slog.Info(LogMsgSubscribed,
		"types", []string{
			string(event.PetUpdated),
			string(event.PetLeveledUp),
		})
}

func (s *Subscriber) handlePetUpdated(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.PetUpdatedPayloadV1](evt.Payload)
	if err != nil {
		slog.WarnContext(ctx, LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	s.send(payload.UserID, EventTypePetUpdated, PetUpdatedPayload{
		Card:   payload.Card,
		Source: sourceOf(evt),
	})
	return nil
}

func (s *Subscriber) handleLevelUp(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.PetLeveledUpPayloadV1](evt.Payload)
	if err != nil {
		slog.WarnContext(ctx, LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	s.send(payload.UserID, EventTypeLevelUp, LevelUpPayload{
		TotalExp:    payload.TotalExp,
		OldLevel:    payload.OldLevel,
		NewLevel:    payload.NewLevel,
		OldRebirths: payload.OldRebirths,
		NewRebirths: payload.NewRebirths,
		Reborn:      payload.NewRebirths > payload.OldRebirths,
		Source:      sourceOf(evt),
	})
	return nil
}

func (s *Subscriber) send(userID, eventType string, payload interface{}) {
	if !s.hub.SendToUser(userID, eventType, payload) {
		slog.Warn(LogMsgEventDropped, "type", eventType, "user_id", userID)
	}
}

func sourceOf(evt event.Event) string {
	src, _ := evt.GetMetadataValue(event.MetadataSource).(string)
	return src
}
