package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NotionPet_Go/internal/domain"
	"github.com/osse101/NotionPet_Go/internal/event"
)

func TestEventMetricsCollector_LevelUp(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	before := testutil.ToFloat64(PetLevelUps.WithLabelValues(event.SourceScheduled))
	rebirthsBefore := testutil.ToFloat64(PetRebirths)

	summary := domain.ExperienceSummary{UserID: "u1", OldLevel: 10, NewLevel: 1, OldRebirths: 0, NewRebirths: 1}
	require.NoError(t, bus.Publish(context.Background(), event.NewPetLeveledUpEvent(summary, event.SourceScheduled)))

	assert.Equal(t, before+1, testutil.ToFloat64(PetLevelUps.WithLabelValues(event.SourceScheduled)))
	assert.Equal(t, rebirthsBefore+1, testutil.ToFloat64(PetRebirths))
}

func TestEventMetricsCollector_CountsEvents(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	before := testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.SettingsSaved)))
	savedBefore := testutil.ToFloat64(SettingsSaved)

	require.NoError(t, bus.Publish(context.Background(), event.NewSettingsSavedEvent(domain.Settings{UserID: "u1", SelectedDBID: "db1"}, true)))

	assert.Equal(t, before+1, testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.SettingsSaved))))
	assert.Equal(t, savedBefore+1, testutil.ToFloat64(SettingsSaved))
}

func TestEventMetricsCollector_IgnoresBadPayload(t *testing.T) {
	c := NewEventMetricsCollector()
	err := c.HandleEvent(context.Background(), event.Event{Type: event.PetLeveledUp, Payload: "garbage"})
	assert.NoError(t, err)
}

func TestObserveOutcome(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, ObserveOutcome(nil))
	assert.Equal(t, OutcomeError, ObserveOutcome(assert.AnError))
}
