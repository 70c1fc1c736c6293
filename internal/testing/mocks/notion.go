package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

// MockNotionClient is a mock implementation of notion.Client
type MockNotionClient struct {
	mock.Mock
}

func (m *MockNotionClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*domain.NotionToken, error) {
	args := m.Called(ctx, code, redirectURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotionToken), args.Error(1)
}

func (m *MockNotionClient) ListDatabases(ctx context.Context, accessToken string) ([]domain.NotionDatabase, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotionDatabase), args.Error(1)
}

func (m *MockNotionClient) GetProperties(ctx context.Context, accessToken, databaseID string) (map[string]domain.NotionProperty, error) {
	args := m.Called(ctx, accessToken, databaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.NotionProperty), args.Error(1)
}

func (m *MockNotionClient) CreateProperty(ctx context.Context, accessToken, databaseID, name, propertyType string) error {
	args := m.Called(ctx, accessToken, databaseID, name, propertyType)
	return args.Error(0)
}

func (m *MockNotionClient) UpdateSelectOptions(ctx context.Context, accessToken, databaseID, propertyName string, options []domain.SelectOption) error {
	args := m.Called(ctx, accessToken, databaseID, propertyName, options)
	return args.Error(0)
}

func (m *MockNotionClient) QueryPages(ctx context.Context, accessToken, databaseID string) ([]domain.NotionPage, error) {
	args := m.Called(ctx, accessToken, databaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotionPage), args.Error(1)
}
