// Package poller implements the badge staleness backstop: a fixed-interval
// recomputation of the action-needed order count, independent of the
// event-driven updates.
package poller

import (
	"context"
	"sync"
	"time"

	"restaurant-owner-panel/internal/telemetry"
)

// Refresher periodically re-derives a count and hands it to apply. A failed
// fetch leaves the previously applied value untouched; a fetch that completes
// after Stop is discarded.
type Refresher struct {
	interval time.Duration
	fetch    func(ctx context.Context) (int, error)
	apply    func(count int)
	emitter  telemetry.EventEmitter

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New returns a stopped Refresher. fetch derives the count; apply publishes
// it to the owning view. emitter may be nil.
func New(interval time.Duration, fetch func(ctx context.Context) (int, error), apply func(int), emitter telemetry.EventEmitter) *Refresher {
	return &Refresher{
		interval: interval,
		fetch:    fetch,
		apply:    apply,
		emitter:  emitter,
	}
}

// Start begins ticking. Calling Start on a running Refresher is a no-op.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.run(runCtx, r.done)
}

// Stop cancels the ticker and waits for the loop to exit, so no apply can
// happen after Stop returns. Stopping a stopped Refresher is a no-op.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (r *Refresher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	count, err := r.fetch(ctx)
	if err != nil {
		// Non-destructive: the previous value stays on screen.
		telemetry.EmitAsync(r.emitter, telemetry.Event{
			Kind:   telemetry.EventPollFailed,
			Detail: err.Error(),
		})
		return
	}
	if ctx.Err() != nil {
		// The owning view was torn down while the fetch was in flight;
		// discard the stale completion.
		return
	}
	r.apply(count)
}
