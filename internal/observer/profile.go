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

// SessionFetcher fetches the authoritative session record from the identity
// collaborator. Satisfied by the identity client.
type SessionFetcher interface {
	GetSession(ctx context.Context, token, ownerID string) (sessiondomain.Session, error)
}

// Profile derives the profile view from the session store. On an admin
// out-of-band update it refetches the authoritative record and replaces the
// stored one; the EventSessionChanged that Replace publishes is handled as a
// plain idempotent re-render, so the originating update never loops into a
// second fetch.
type Profile struct {
	store   *session.Store
	fetcher SessionFetcher

	mu        sync.Mutex
	record    sessiondomain.Session
	present   bool
	disposers []bus.Dispose
}

// NewProfile returns an unmounted profile observer.
func NewProfile(store *session.Store, fetcher SessionFetcher) *Profile {
	return &Profile{store: store, fetcher: fetcher}
}

// Mount seeds the record synchronously and subscribes to session events.
func (p *Profile) Mount(ctx context.Context, b *bus.Bus) {
	p.refresh(ctx)
	rerender := func(bus.Event) { p.refresh(ctx) }
	p.disposers = append(p.disposers,
		b.Subscribe(bus.EventSessionChanged, rerender),
		b.Subscribe(bus.EventSessionLoggedOut, rerender),
		b.Subscribe(bus.EventSessionAdminUpdated, func(bus.Event) { p.refetch(ctx) }),
	)
}

// Unmount disposes the profile's subscriptions.
func (p *Profile) Unmount() {
	for _, dispose := range p.disposers {
		dispose()
	}
	p.disposers = nil
}

// Record returns the current view of the session record and whether one is
// present.
func (p *Profile) Record() (sessiondomain.Session, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.record, p.present
}

// refresh re-derives the view from the store. Idempotent: applying it twice
// for one event yields the same state.
func (p *Profile) refresh(ctx context.Context) {
	record, ok := p.store.Load(ctx)
	p.mu.Lock()
	p.record, p.present = record, ok
	p.mu.Unlock()
}

// refetch pulls the authoritative record after an admin update and replaces
// the stored one. An unauthorized or vanished session clears the store; an
// unavailable identity service leaves the current record in place.
func (p *Profile) refetch(ctx context.Context) {
	current, ok := p.store.Load(ctx)
	if !ok {
		return
	}
	fresh, err := p.fetcher.GetSession(ctx, current.Token, current.ID)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			_ = p.store.Clear(ctx)
		}
		return
	}
	// Replace publishes EventSessionChanged; our handler re-renders from the
	// store without fetching again.
	_ = p.store.Replace(ctx, fresh)
}
