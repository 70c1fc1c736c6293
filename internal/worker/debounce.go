package worker

import (
	"context"
	"sync"
	"time"
)

// debouncer keeps at most one pending call per key. A new trigger for a key
// restarts its delay.
type debouncer struct {
	mu      sync.Mutex
	pending map[string]*time.Timer
	closed  bool

	// ctx is handed to every call and cancelled when close gives up waiting
	ctx    context.Context
	cancel context.CancelFunc
	active sync.WaitGroup
}

func newDebouncer() *debouncer {
	ctx, cancel := context.WithCancel(context.Background())
	return &debouncer{
		pending: make(map[string]*time.Timer),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// trigger reports false once the debouncer is closed
func (d *debouncer) trigger(key string, delay time.Duration, fn func(ctx context.Context)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	if t := d.pending[key]; t != nil {
		t.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		d.mu.Lock()
		// lost a race with a newer trigger or with close
		if d.closed || d.pending[key] != t {
			d.mu.Unlock()
			return
		}
		delete(d.pending, key)
		d.active.Add(1)
		d.mu.Unlock()

		defer d.active.Done()
		fn(d.ctx)
	})
	d.pending[key] = t
	return true
}

func (d *debouncer) size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// close drops pending calls and waits for running ones until ctx ends, at which
// point their context is cancelled. It returns the keys it dropped.
func (d *debouncer) close(ctx context.Context) ([]string, error) {
	d.mu.Lock()
	d.closed = true
	dropped := make([]string, 0, len(d.pending))
	for key, t := range d.pending {
		t.Stop()
		dropped = append(dropped, key)
	}
	clear(d.pending)
	d.mu.Unlock()

	idle := make(chan struct{})
	go func() {
		d.active.Wait()
		close(idle)
	}()

	select {
	case <-idle:
		d.cancel()
		return dropped, nil
	case <-ctx.Done():
		d.cancel()
		<-idle
		return dropped, ctx.Err()
	}
}
