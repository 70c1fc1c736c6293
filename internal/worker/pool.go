// Package worker runs background work: a bounded job pool, the periodic sync
// sweep and debounced per-user refreshes.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/NotionPet_Go/internal/logger"
	"github.com/osse101/NotionPet_Go/internal/metrics"
)

var (
	// ErrPoolStopped is returned for jobs submitted after Stop
	ErrPoolStopped = errors.New("worker pool stopped")
	// ErrQueueFull is returned by TrySubmit when no queue slot is free
	ErrQueueFull = errors.New("worker queue full")
)

// Job is a unit of background work
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to the Job interface
type JobFunc func(ctx context.Context) error

// Process calls f(ctx)
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

type task struct {
	name string
	job  Job
}

// Pool runs submitted jobs on a fixed number of goroutines. Every job receives
// a context that is cancelled by Stop.
type Pool struct {
	size  int
	queue chan task

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewPool creates a pool of size workers with room for queueSize waiting jobs
func NewPool(size, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		size:   max(size, 1),
		queue:  make(chan task, max(queueSize, 0)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	p.wg.Add(p.size)
	for range p.size {
		go p.loop()
	}
}

func (p *Pool) loop() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case t := <-p.queue:
			p.run(t)
		}
	}
}

func (p *Pool) run(t task) {
	log := logger.FromContext(p.ctx).With("job", t.name)
	start := time.Now()
	err := safeProcess(p.ctx, t.job)
	metrics.JobDuration.WithLabelValues(t.name).Observe(time.Since(start).Seconds())
	metrics.JobRuns.WithLabelValues(t.name, metrics.ObserveOutcome(err)).Inc()
	if err != nil {
		log.Error(LogMsgWorkerJobFailed, "error", err)
	}
}

func safeProcess(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf(ErrFmtJobPanicked, r)
		}
	}()
	return job.Process(ctx)
}

// Submit queues a job, waiting for a free slot until ctx ends or the pool stops
func (p *Pool) Submit(ctx context.Context, name string, job Job) error {
	if p.ctx.Err() != nil {
		return p.dropped(name, ErrPoolStopped)
	}
	select {
	case p.queue <- task{name: name, job: job}:
		return nil
	case <-p.ctx.Done():
		return p.dropped(name, ErrPoolStopped)
	case <-ctx.Done():
		return p.dropped(name, ctx.Err())
	}
}

// TrySubmit queues a job only if a slot is free right now
func (p *Pool) TrySubmit(name string, job Job) error {
	if p.ctx.Err() != nil {
		return p.dropped(name, ErrPoolStopped)
	}
	select {
	case p.queue <- task{name: name, job: job}:
		return nil
	default:
		return p.dropped(name, ErrQueueFull)
	}
}

func (p *Pool) dropped(name string, err error) error {
	metrics.JobsDropped.WithLabelValues(name).Inc()
	return err
}

// Stop cancels running jobs, drops queued ones and waits for the workers.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}
