package repository

import (
	"context"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

// Settings defines the data access interface for user settings
type Settings interface {
	GetSettings(ctx context.Context, userID string) (*domain.Settings, error)
	SaveSettings(ctx context.Context, settings *domain.Settings) error
	UpdateDifficultyOrder(ctx context.Context, userID string, order []string) error
	// ListConfiguredUserIDs returns users with a database and experience property selected
	ListConfiguredUserIDs(ctx context.Context) ([]string, error)
}
