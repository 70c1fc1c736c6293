package metrics

import (
	"context"

	"github.com/osse101/NotionPet_Go/internal/event"
	"github.com/osse101/NotionPet_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.PetUpdated,
		event.PetLeveledUp,
		event.SettingsSaved,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.PetUpdated:
		payload, err := event.DecodePayload[event.PetUpdatedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		PetLevel.Observe(float64(payload.Card.Progression.Level))

	case event.PetLeveledUp:
		payload, err := event.DecodePayload[event.PetLeveledUpPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		source, _ := evt.GetMetadataValue(event.MetadataSource).(string)
		if source == "" {
			source = SourceUnknown
		}
		if payload.NewLevel != payload.OldLevel || payload.NewRebirths != payload.OldRebirths {
			PetLevelUps.WithLabelValues(source).Inc()
		}
		if rebirths := payload.NewRebirths - payload.OldRebirths; rebirths > 0 {
			PetRebirths.Add(float64(rebirths))
		}

	case event.SettingsSaved:
		SettingsSaved.Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
