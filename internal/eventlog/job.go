package eventlog

import (
	"context"
	"time"

	"github.com/osse101/NotionPet_Go/internal/logger"
)

// RetentionJob prunes history older than a number of days. It runs on the scheduler.
type RetentionJob struct {
	history Service
	days    int
}

func NewRetentionJob(history Service, days int) *RetentionJob {
	return &RetentionJob{history: history, days: days}
}

func (j *RetentionJob) Process(ctx context.Context) error {
	start := time.Now()
	deleted, err := j.history.CleanupOldEvents(ctx, j.days)
	log := logger.FromContext(ctx).With(LogFieldRetentionDays, j.days, LogFieldDuration, time.Since(start))

	if err != nil {
		log.Error(LogMsgRetentionFailed, LogFieldError, err)
		return err
	}
	if deleted == 0 {
		log.Debug(LogMsgRetentionNothingToDo)
		return nil
	}
	log.Info(LogMsgRetentionPruned, LogFieldDeletedCount, deleted)
	return nil
}
