package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

// SettingsRepository implements repository.Settings for PostgreSQL
type SettingsRepository struct {
	db *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSettings retrieves a user's settings
func (r *SettingsRepository) GetSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	query := `
		SELECT user_id, selected_db_id, xp_property_name, status_property_name,
		       difficulty_property_name, difficulty_options_order, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var s domain.Settings
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.UserID,
		&s.SelectedDBID,
		&s.XPPropertyName,
		&s.StatusPropertyName,
		&s.DifficultyPropertyName,
		&s.DifficultyOptionsOrder,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSettings, err)
	}
	if s.DifficultyOptionsOrder == nil {
		s.DifficultyOptionsOrder = []string{}
	}

	return &s, nil
}

// SaveSettings inserts or replaces a user's settings
func (r *SettingsRepository) SaveSettings(ctx context.Context, s *domain.Settings) error {
	query := `
		INSERT INTO user_settings (user_id, selected_db_id, xp_property_name, status_property_name,
		                           difficulty_property_name, difficulty_options_order, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			selected_db_id           = EXCLUDED.selected_db_id,
			xp_property_name         = EXCLUDED.xp_property_name,
			status_property_name     = EXCLUDED.status_property_name,
			difficulty_property_name = EXCLUDED.difficulty_property_name,
			difficulty_options_order = EXCLUDED.difficulty_options_order,
			updated_at               = NOW()
	`

	order := s.DifficultyOptionsOrder
	if order == nil {
		order = []string{}
	}

	_, err := r.db.Exec(ctx, query,
		s.UserID,
		s.SelectedDBID,
		s.XPPropertyName,
		s.StatusPropertyName,
		s.DifficultyPropertyName,
		order,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveSettings, err)
	}
	return nil
}

// UpdateDifficultyOrder replaces only the persisted option order
func (r *SettingsRepository) UpdateDifficultyOrder(ctx context.Context, userID string, order []string) error {
	if order == nil {
		order = []string{}
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE user_settings
		SET difficulty_options_order = $2, updated_at = NOW()
		WHERE user_id = $1
	`, userID, order)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateOrder, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSettingsNotFound
	}
	return nil
}

// ListConfiguredUserIDs returns users whose settings name a database and experience property
func (r *SettingsRepository) ListConfiguredUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id
		FROM user_settings
		WHERE selected_db_id <> '' AND xp_property_name <> ''
		ORDER BY user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListConfigured, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRowIterationError, err)
	}

	return ids, nil
}
