// Package scheduler submits jobs to the worker pool at fixed intervals.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/NotionPet_Go/internal/logger"
	"github.com/osse101/NotionPet_Go/internal/worker"
)

// ErrStopped is returned by Add after Stop
var ErrStopped = errors.New("scheduler stopped")

// Submitter accepts jobs without blocking
type Submitter interface {
	TrySubmit(name string, job worker.Job) error
}

// Entry describes one recurring job
type Entry struct {
	Name  string
	Every time.Duration
	Job   worker.Job
	// Immediate also submits the job once when the entry is added
	Immediate bool
}

// Scheduler runs one ticker per entry
type Scheduler struct {
	pool Submitter

	mu      sync.Mutex
	names   map[string]struct{}
	stopped bool

	quit     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a scheduler feeding pool
func New(pool Submitter) *Scheduler {
	return &Scheduler{
		pool:  pool,
		names: make(map[string]struct{}),
		quit:  make(chan struct{}),
	}
}

// Add starts ticking e. A tick that finds the pool busy is skipped, never queued.
func (s *Scheduler) Add(e Entry) error {
	if e.Every <= 0 {
		return fmt.Errorf(ErrFmtBadInterval, e.Name, e.Every)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrStopped
	}
	if _, dup := s.names[e.Name]; dup {
		return fmt.Errorf(ErrFmtDuplicate, e.Name)
	}
	s.names[e.Name] = struct{}{}

	log := logger.FromContext(context.Background()).With("job", e.Name)
	log.Info(LogMsgJobScheduled, "every", e.Every, "immediate", e.Immediate)

	s.wg.Add(1)
	go s.tick(e, log)
	return nil
}

func (s *Scheduler) tick(e Entry, log *slog.Logger) {
	defer s.wg.Done()
	submit := func() {
		if err := s.pool.TrySubmit(e.Name, e.Job); err != nil {
			log.Warn(LogMsgTickSkipped, "error", err)
		}
	}
	if e.Immediate {
		submit()
	}

	ticker := time.NewTicker(e.Every)
	defer ticker.Stop()
	for {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			submit()
		}
	}
}

// Stop ends every ticker. Jobs already submitted keep running on the pool.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()
		close(s.quit)
		s.wg.Wait()
	})
}
