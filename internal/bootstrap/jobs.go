package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/NotionPet_Go/internal/config"
	"github.com/osse101/NotionPet_Go/internal/eventlog"
	"github.com/osse101/NotionPet_Go/internal/scheduler"
	"github.com/osse101/NotionPet_Go/internal/worker"
)

// StartBackgroundJobs starts the worker pool and schedules the periodic experience
// sweep and history cleanup. Each sweep is bounded by the sync interval so a slow
// sweep never overlaps the next one.
func StartBackgroundJobs(cfg *config.Config, syncer worker.Syncer, history eventlog.Service) (*worker.Pool, *scheduler.Scheduler, error) {
	pool := worker.NewPool(cfg.SyncWorkers, WorkerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	entries := []scheduler.Entry{
		{Name: JobNameSync, Every: cfg.SyncInterval, Job: worker.NewSyncJob(syncer, cfg.SyncInterval), Immediate: true},
		{Name: JobNameEventCleanup, Every: EventCleanupInterval, Job: eventlog.NewRetentionJob(history, cfg.EventRetentionDays)},
	}
	for _, e := range entries {
		if err := sched.Add(e); err != nil {
			sched.Stop()
			pool.Stop()
			return nil, nil, fmt.Errorf("schedule background jobs: %w", err)
		}
	}

	slog.Info(LogMsgBackgroundJobsStarted,
		"workers", cfg.SyncWorkers,
		"sync_interval", cfg.SyncInterval,
		"event_retention_days", cfg.EventRetentionDays)

	return pool, sched, nil
}
