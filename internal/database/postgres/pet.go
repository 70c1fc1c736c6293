package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

// PetRepository implements repository.Pet for PostgreSQL
type PetRepository struct {
	db *pgxpool.Pool
}

// NewPetRepository creates a new PetRepository
func NewPetRepository(db *pgxpool.Pool) *PetRepository {
	return &PetRepository{db: db}
}

// GetPet retrieves the stored pet state
func (r *PetRepository) GetPet(ctx context.Context, userID string) (*domain.PetState, error) {
	query := `
		SELECT user_id, total_exp, rebirth_count, page_count, last_updated
		FROM pets
		WHERE user_id = $1
	`

	var pet domain.PetState
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&pet.UserID,
		&pet.TotalExp,
		&pet.RebirthCount,
		&pet.PageCount,
		&pet.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPetNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPet, err)
	}

	return &pet, nil
}

// SavePet upserts the pet state and returns what was stored.
// total_exp and rebirth_count only ever move up; a lower incoming total keeps the stored one.
func (r *PetRepository) SavePet(ctx context.Context, pet *domain.PetState) (*domain.PetState, error) {
	query := `
		INSERT INTO pets (user_id, total_exp, rebirth_count, page_count, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			total_exp     = GREATEST(pets.total_exp, EXCLUDED.total_exp),
			rebirth_count = GREATEST(pets.rebirth_count, EXCLUDED.rebirth_count),
			page_count    = EXCLUDED.page_count,
			last_updated  = EXCLUDED.last_updated
		RETURNING user_id, total_exp, rebirth_count, page_count, last_updated
	`

	var stored domain.PetState
	err := r.db.QueryRow(ctx, query,
		pet.UserID,
		pet.TotalExp,
		pet.RebirthCount,
		pet.PageCount,
		pet.LastUpdated,
	).Scan(
		&stored.UserID,
		&stored.TotalExp,
		&stored.RebirthCount,
		&stored.PageCount,
		&stored.LastUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSavePet, err)
	}

	return &stored, nil
}
