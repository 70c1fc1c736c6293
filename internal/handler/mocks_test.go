package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/NotionPet_Go/internal/domain"
	"github.com/osse101/NotionPet_Go/internal/event"
	"github.com/osse101/NotionPet_Go/internal/eventlog"
)

type MockPetService struct {
	mock.Mock
}

func (m *MockPetService) GetCard(ctx context.Context, userID string) (*domain.PetCard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PetCard), args.Error(1)
}

func (m *MockPetService) GetPublicCard(ctx context.Context, userID string) (*domain.PetCard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PetCard), args.Error(1)
}

func (m *MockPetService) RefreshExperience(ctx context.Context, userID string) (*domain.ExperienceSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExperienceSummary), args.Error(1)
}

func (m *MockPetService) SyncAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsService) Save(ctx context.Context, userID string, input domain.Settings) (*domain.Settings, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsService) DifficultyOptions(ctx context.Context, userID string) (*domain.DifficultyView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DifficultyView), args.Error(1)
}

func (m *MockSettingsService) MoveDifficultyOption(ctx context.Context, userID string, index int, dir domain.Direction) (*domain.DifficultyView, error) {
	args := m.Called(ctx, userID, index, dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DifficultyView), args.Error(1)
}

func (m *MockSettingsService) ManageSelectOption(ctx context.Context, userID string, change domain.OptionChange) (*domain.DifficultyView, error) {
	args := m.Called(ctx, userID, change)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DifficultyView), args.Error(1)
}

func (m *MockSettingsService) CreateProperty(ctx context.Context, userID, propertyType string) (*domain.NotionProperty, error) {
	args := m.Called(ctx, userID, propertyType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotionProperty), args.Error(1)
}

func (m *MockSettingsService) ConnectNotion(ctx context.Context, userID, code, redirectURI string) (*domain.NotionToken, error) {
	args := m.Called(ctx, userID, code, redirectURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotionToken), args.Error(1)
}

func (m *MockSettingsService) ListDatabases(ctx context.Context, userID string) ([]domain.NotionDatabase, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotionDatabase), args.Error(1)
}

func (m *MockSettingsService) GetProperties(ctx context.Context, userID, databaseID string) ([]domain.NotionProperty, error) {
	args := m.Called(ctx, userID, databaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotionProperty), args.Error(1)
}

type MockEventLogService struct {
	mock.Mock
}

func (m *MockEventLogService) Subscribe(bus event.Bus) {
	m.Called(bus)
}

func (m *MockEventLogService) History(ctx context.Context, userID, eventType string, since *time.Time, limit int) ([]eventlog.Event, error) {
	args := m.Called(ctx, userID, eventType, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]eventlog.Event), args.Error(1)
}

func (m *MockEventLogService) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

// MockCooldownService runs fn unless an error is configured
type MockCooldownService struct {
	mock.Mock
}

func (m *MockCooldownService) Remaining(ctx context.Context, userID, action string) (time.Duration, error) {
	args := m.Called(ctx, userID, action)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *MockCooldownService) Run(ctx context.Context, userID, action string, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, userID, action)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

func (m *MockCooldownService) Clear(ctx context.Context, userID, action string) error {
	return m.Called(ctx, userID, action).Error(0)
}
