package repository

import (
	"context"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

// Pet defines the data access interface for pet state
type Pet interface {
	GetPet(ctx context.Context, userID string) (*domain.PetState, error)
	// SavePet upserts the state. The stored total never decreases.
	SavePet(ctx context.Context, pet *domain.PetState) (*domain.PetState, error)
}
