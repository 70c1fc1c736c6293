package eventlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NotionPet_Go/internal/domain"
	"github.com/osse101/NotionPet_Go/internal/event"
)

// MockEventBus is a mock implementation of event.Bus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

func TestService_Subscribe(t *testing.T) {
	mockBus := new(MockEventBus)
	for _, et := range []event.Type{event.PetUpdated, event.PetLeveledUp, event.SettingsSaved} {
		mockBus.On("Subscribe", et, mock.Anything).Return().Once()
	}

	NewService(new(MockRepository)).Subscribe(mockBus)
	mockBus.AssertExpectations(t)
}

func TestService_LogsPetUpdatedSnapshot(t *testing.T) {
	mockRepo := new(MockRepository)
	bus := event.NewMemoryBus()
	NewService(mockRepo).Subscribe(bus)

	card := domain.PetCard{
		UserID:      "user-1",
		TotalExp:    3450,
		PageCount:   12,
		Progression: domain.ProgressionResult{Level: 3, RebirthCount: 1},
	}
	mockRepo.On("Append", mock.Anything, mock.MatchedBy(func(rec Record) bool {
		return rec.EventType == string(event.PetUpdated) && rec.UserID == "user-1" &&
			assert.ObjectsAreEqual(map[string]interface{}{
				PayloadKeyTotalExp:  int64(3450),
				PayloadKeyLevel:     3,
				PayloadKeyRebirths:  int64(1),
				PayloadKeyPageCount: 12,
			}, rec.Payload)
	})).Return(nil).Once()

	require.NoError(t, bus.Publish(context.Background(), event.NewPetUpdatedEvent(card, event.SourceManual)))
	mockRepo.AssertExpectations(t)
}

func TestService_LogsTypedPayloadAsMap(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)

	summary := domain.ExperienceSummary{UserID: "user-1", TotalExp: 260, OldLevel: 2, NewLevel: 3}
	evt := event.NewPetLeveledUpEvent(summary, event.SourceScheduled)

	mockRepo.On("Append", mock.Anything, mock.MatchedBy(func(rec Record) bool {
		return rec.EventType == string(event.PetLeveledUp) && rec.UserID == "user-1" &&
			rec.Payload["new_level"] == float64(3) && rec.Payload["old_level"] == float64(2) &&
			rec.Metadata[event.MetadataSource] == event.SourceScheduled
	})).Return(nil).Once()

	require.NoError(t, svc.handleEvent(context.Background(), evt))
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEventRepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	mockRepo.On("Append", mock.Anything, mock.Anything).Return(errors.New("db down"))

	evt := event.NewSettingsSavedEvent(domain.Settings{UserID: "user-1", SelectedDBID: "db"}, false)
	assert.Error(t, svc.handleEvent(context.Background(), evt))
}

func TestService_History(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"default", 0, DefaultHistoryLimit},
		{"within bounds", 10, 10},
		{"clamped", 5000, MaxHistoryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			mockRepo.On("List", mock.Anything, EventFilter{UserID: "user-1", EventType: "pet.leveled_up", Limit: tt.wantLimit}).Return(nil, nil)

			events, err := NewService(mockRepo).History(context.Background(), "user-1", "pet.leveled_up", nil, tt.limit)
			require.NoError(t, err)
			assert.NotNil(t, events)
			assert.Empty(t, events)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_HistoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := NewService(mockRepo).History(context.Background(), "user-1", "", nil, 5)
	assert.ErrorContains(t, err, ErrMsgFailedToGetHistory)
}

func TestService_CleanupOldEvents(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		days       int
		wantCutoff time.Time
	}{
		{"configured", 10, time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)},
		{"zero uses default", 0, now.AddDate(0, 0, -DefaultRetentionDays)},
		{"negative uses default", -3, now.AddDate(0, 0, -DefaultRetentionDays)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			svc := NewService(mockRepo).(*service)
			svc.now = func() time.Time { return now }
			mockRepo.On("DeleteBefore", mock.Anything, tt.wantCutoff).Return(int64(5), nil).Once()

			count, err := svc.CleanupOldEvents(context.Background(), tt.days)
			require.NoError(t, err)
			assert.Equal(t, int64(5), count)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_CleanupOldEventsError(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("DeleteBefore", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	_, err := NewService(mockRepo).CleanupOldEvents(context.Background(), 7)
	assert.ErrorContains(t, err, ErrMsgFailedToCleanup)
}
