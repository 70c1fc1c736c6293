package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

// TokenRepository implements repository.Token for PostgreSQL
type TokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{db: db}
}

// GetToken retrieves a user's Notion grant
func (r *TokenRepository) GetToken(ctx context.Context, userID string) (*domain.NotionToken, error) {
	query := `
		SELECT user_id, access_token, workspace_id, workspace_name, bot_id, created_at
		FROM notion_tokens
		WHERE user_id = $1
	`

	var tok domain.NotionToken
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&tok.UserID,
		&tok.AccessToken,
		&tok.WorkspaceID,
		&tok.WorkspaceName,
		&tok.BotID,
		&tok.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotionNotConnected
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetToken, err)
	}

	return &tok, nil
}

// SaveToken stores a user's Notion grant, replacing any earlier one
func (r *TokenRepository) SaveToken(ctx context.Context, tok *domain.NotionToken) error {
	query := `
		INSERT INTO notion_tokens (user_id, access_token, workspace_id, workspace_name, bot_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			access_token   = EXCLUDED.access_token,
			workspace_id   = EXCLUDED.workspace_id,
			workspace_name = EXCLUDED.workspace_name,
			bot_id         = EXCLUDED.bot_id,
			created_at     = NOW()
	`

	_, err := r.db.Exec(ctx, query,
		tok.UserID,
		tok.AccessToken,
		tok.WorkspaceID,
		tok.WorkspaceName,
		tok.BotID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveToken, err)
	}
	return nil
}
