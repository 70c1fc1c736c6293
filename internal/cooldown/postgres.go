package cooldown

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/NotionPet_Go/internal/logger"
)

// pgService stores last uses in the user_cooldowns table
type pgService struct {
	db     *pgxpool.Pool
	config Config
	now    func() time.Time
}

// NewPostgresService creates a cooldown service backed by Postgres
func NewPostgresService(db *pgxpool.Pool, config Config) Service {
	return &pgService{db: db, config: config, now: time.Now}
}

func (s *pgService) Remaining(ctx context.Context, userID, action string) (time.Duration, error) {
	window := s.config.GetCooldownDuration(action)
	if s.config.Disabled || window == 0 {
		return 0, nil
	}

	var lastUsed time.Time
	err := s.db.QueryRow(ctx, sqlLastUsed, userID, action).Scan(&lastUsed)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgLastUsed, action, err)
	}
	return remainingAt(s.now(), lastUsed, window), nil
}

// Run claims the slot inside a transaction, runs fn, and commits only if fn
// succeeds. A concurrent claim for the same row blocks on the row lock until
// this transaction ends and then sees the new last use.
func (s *pgService) Run(ctx context.Context, userID, action string, fn func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)
	window := s.config.GetCooldownDuration(action)
	if s.config.Disabled || window == 0 {
		log.Debug(LogMsgCooldownBypassed, "action", action)
		return fn(ctx)
	}

	// Most repeats are turned away here without opening a transaction
	remaining, err := s.Remaining(ctx, userID, action)
	if err != nil {
		return err
	}
	if remaining > 0 {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTx, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := s.now()
	var claimed time.Time
	err = tx.QueryRow(ctx, sqlClaim, userID, action, now, window.Seconds()).Scan(&claimed)
	if errors.Is(err, pgx.ErrNoRows) {
		var lastUsed time.Time
		if err := tx.QueryRow(ctx, sqlLastUsed, userID, action).Scan(&lastUsed); err != nil {
			return fmt.Errorf(ErrMsgLastUsed, action, err)
		}
		remaining := remainingAt(now, lastUsed, window)
		log.Debug(LogMsgLostClaimRace, "action", action, "remaining", remaining)
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}
	if err != nil {
		return fmt.Errorf(ErrMsgClaim, action, err)
	}

	if err := fn(ctx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTx, action, err)
	}
	log.Debug(LogMsgCooldownStarted, "action", action, "window", window)
	return nil
}

func (s *pgService) Clear(ctx context.Context, userID, action string) error {
	if _, err := s.db.Exec(ctx, sqlClear, userID, action); err != nil {
		return fmt.Errorf(ErrMsgClear, action, err)
	}
	return nil
}
