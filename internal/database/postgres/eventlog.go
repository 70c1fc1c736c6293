package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/NotionPet_Go/internal/eventlog"
)

const (
	sqlAppendEvent = `INSERT INTO events (event_type, user_id, payload, metadata) VALUES ($1, $2, $3, $4)`

	// Optional filters are passed as empty values rather than spliced into the text
	sqlListEvents = `
		SELECT id, event_type, user_id, payload, metadata, created_at
		FROM events
		WHERE user_id = @user_id
		  AND (@event_type = '' OR event_type = @event_type)
		  AND (@since::timestamptz IS NULL OR created_at >= @since)
		ORDER BY created_at DESC, id DESC
		LIMIT NULLIF(@limit, 0)`

	sqlDeleteEventsBefore = `DELETE FROM events WHERE created_at < $1`
)

// EventLogRepository stores pet history in the events table
type EventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

// Append inserts one history entry. Payload and metadata are stored as jsonb.
func (r *EventLogRepository) Append(ctx context.Context, rec eventlog.Record) error {
	var metadata any
	if len(rec.Metadata) > 0 {
		metadata = rec.Metadata
	}
	if _, err := r.db.Exec(ctx, sqlAppendEvent, rec.EventType, rec.UserID, rec.Payload, metadata); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
	}
	return nil
}

// List returns a user's history newest first
func (r *EventLogRepository) List(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	rows, err := r.db.Query(ctx, sqlListEvents, pgx.NamedArgs{
		"user_id":    filter.UserID,
		"event_type": filter.EventType,
		"since":      filter.Since,
		"limit":      max(filter.Limit, 0),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetEvents, err)
	}
	events, err := pgx.CollectRows(rows, pgx.RowToStructByPos[eventlog.Event])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
	}
	return events, nil
}

// DeleteBefore removes events created before cutoff and reports how many
func (r *EventLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, sqlDeleteEventsBefore, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}
	return tag.RowsAffected(), nil
}
