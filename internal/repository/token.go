package repository

import (
	"context"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

// Token defines the data access interface for stored Notion grants
type Token interface {
	GetToken(ctx context.Context, userID string) (*domain.NotionToken, error)
	SaveToken(ctx context.Context, token *domain.NotionToken) error
}
