// Package debounce runs keyed tasks after a quiet window. A newer call for
// the same key cancels the pending or running older one, so only the most
// recent call for a key ever delivers a result.
package debounce

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrSuperseded is returned to a call replaced by a newer call for its key.
var ErrSuperseded = errors.New("debounce: superseded by a newer call")

type task struct {
	cancel     context.CancelFunc
	superseded atomic.Bool
}

// Debouncer holds one in-flight token per key.
type Debouncer struct {
	window time.Duration
	mu     sync.Mutex
	tasks  map[string]*task
}

// New creates a Debouncer waiting window before running a task.
func New(window time.Duration) *Debouncer {
	return &Debouncer{
		window: window,
		tasks:  make(map[string]*task),
	}
}

func (d *Debouncer) begin(ctx context.Context, key string) (context.Context, *task) {
	taskCtx, cancel := context.WithCancel(ctx)
	t := &task{cancel: cancel}

	d.mu.Lock()
	if prev, ok := d.tasks[key]; ok {
		prev.superseded.Store(true)
		prev.cancel()
	}
	d.tasks[key] = t
	d.mu.Unlock()

	return taskCtx, t
}

func (d *Debouncer) end(key string, t *task) {
	d.mu.Lock()
	if d.tasks[key] == t {
		delete(d.tasks, key)
	}
	d.mu.Unlock()
	t.cancel()
}

// Cancel drops whatever is pending for key.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	if t, ok := d.tasks[key]; ok {
		t.superseded.Store(true)
		t.cancel()
		delete(d.tasks, key)
	}
	d.mu.Unlock()
}

// Do waits for the debouncer window and then runs fn, unless a newer call
// for the same key arrives first. A result produced after being superseded
// is discarded.
func Do[T any](ctx context.Context, d *Debouncer, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	taskCtx, t := d.begin(ctx, key)
	defer d.end(key, t)

	if d.window > 0 {
		timer := time.NewTimer(d.window)
		defer timer.Stop()

		select {
		case <-taskCtx.Done():
			if t.superseded.Load() {
				return zero, ErrSuperseded
			}
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	result, err := fn(taskCtx)
	if t.superseded.Load() {
		return zero, ErrSuperseded
	}
	if err != nil {
		return zero, err
	}
	return result, nil
}
