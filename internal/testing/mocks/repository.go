// Package mocks holds testify mocks of the repository and task-database interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

// MockPetRepository is a mock implementation of repository.Pet
type MockPetRepository struct {
	mock.Mock
}

func (m *MockPetRepository) GetPet(ctx context.Context, userID string) (*domain.PetState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PetState), args.Error(1)
}

func (m *MockPetRepository) SavePet(ctx context.Context, pet *domain.PetState) (*domain.PetState, error) {
	args := m.Called(ctx, pet)
	if fn, ok := args.Get(0).(func(context.Context, *domain.PetState) *domain.PetState); ok {
		return fn(ctx, pet), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PetState), args.Error(1)
}

// MockSettingsRepository is a mock implementation of repository.Settings
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, settings *domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) UpdateDifficultyOrder(ctx context.Context, userID string, order []string) error {
	args := m.Called(ctx, userID, order)
	return args.Error(0)
}

func (m *MockSettingsRepository) ListConfiguredUserIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockTokenRepository is a mock implementation of repository.Token
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) GetToken(ctx context.Context, userID string) (*domain.NotionToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotionToken), args.Error(1)
}

func (m *MockTokenRepository) SaveToken(ctx context.Context, token *domain.NotionToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
