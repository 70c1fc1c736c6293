package worker

import (
	"context"
	"time"

	"github.com/osse101/NotionPet_Go/internal/logger"
)

// Syncer refreshes every configured user
type Syncer interface {
	SyncAll(ctx context.Context) error
}

// SyncJob runs one full sync sweep. Sweeps never overlap: a tick that finds the
// previous sweep still running is skipped.
type SyncJob struct {
	syncer  Syncer
	timeout time.Duration
	running chan struct{}
}

// NewSyncJob creates a sweep job bounded by timeout
func NewSyncJob(syncer Syncer, timeout time.Duration) *SyncJob {
	return &SyncJob{
		syncer:  syncer,
		timeout: timeout,
		running: make(chan struct{}, 1),
	}
}

// Process runs the sweep
func (j *SyncJob) Process(ctx context.Context) error {
	select {
	case j.running <- struct{}{}:
		defer func() { <-j.running }()
	default:
		logger.FromContext(ctx).Warn(LogMsgSyncSkipped)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	log := logger.FromContext(ctx)
	log.Info(LogMsgSyncStarting)
	if err := j.syncer.SyncAll(ctx); err != nil {
		return err
	}
	log.Info(LogMsgSyncCompleted)
	return nil
}
