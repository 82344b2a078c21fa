package observer

import (
	"context"
	"errors"
	"sync"

	"restaurant-owner-panel/internal/api"
	"restaurant-owner-panel/internal/bus"
	"restaurant-owner-panel/internal/session"
	sessiondomain "restaurant-owner-panel/internal/session/domain"
)

// Counter re-derives the action-needed order count from the order
// collaborator. Satisfied by the order workflow service.
type Counter interface {
	PendingCount(ctx context.Context, sess sessiondomain.Session) (int, error)
}

// Badge tracks the count of orders needing attention. It recomputes on
// session changes and is also driven periodically by the polling refresher
// as a staleness backstop. A failed recompute leaves the previous count
// displayed; the badge never regresses to an error state.
type Badge struct {
	store   *session.Store
	counter Counter

	mu        sync.Mutex
	count     int
	disposers []bus.Dispose
}

// NewBadge returns an unmounted badge observer.
func NewBadge(store *session.Store, counter Counter) *Badge {
	return &Badge{store: store, counter: counter}
}

// Mount seeds the count synchronously and subscribes to session events.
func (b *Badge) Mount(ctx context.Context, nb *bus.Bus) {
	b.Refresh(ctx)
	b.disposers = append(b.disposers,
		nb.Subscribe(bus.EventSessionChanged, func(bus.Event) { b.Refresh(ctx) }),
		nb.Subscribe(bus.EventSessionLoggedOut, func(bus.Event) { b.reset() }),
	)
}

// Unmount disposes the badge's subscriptions.
func (b *Badge) Unmount() {
	for _, dispose := range b.disposers {
		dispose()
	}
	b.disposers = nil
}

// Count returns the last successfully derived count.
func (b *Badge) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Refresh recomputes the count once. On fetch failure the previous count is
// kept and the error is returned for the caller to log.
func (b *Badge) Refresh(ctx context.Context) error {
	record, ok := b.store.Load(ctx)
	if !ok {
		b.reset()
		return nil
	}
	count, err := b.counter.PendingCount(ctx, record)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			// The token no longer works; a stale count would misrepresent an
			// ended session.
			_ = b.store.Clear(ctx)
		}
		return err
	}
	b.mu.Lock()
	b.count = count
	b.mu.Unlock()
	return nil
}

// SetCount overwrites the displayed count. This is the apply hook for the
// polling refresher, which derives counts outside the badge.
func (b *Badge) SetCount(count int) {
	b.mu.Lock()
	b.count = count
	b.mu.Unlock()
}

func (b *Badge) reset() {
	b.mu.Lock()
	b.count = 0
	b.mu.Unlock()
}
