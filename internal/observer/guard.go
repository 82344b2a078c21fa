// Package observer implements the panel regions that derive their view from
// the session store: route guard, navigation bar, order-count badge, and
// profile. Each region seeds synchronously from the store on Mount,
// subscribes to session events, and disposes its subscriptions on Unmount.
package observer

import (
	"context"
	"time"

	"restaurant-owner-panel/internal/bus"
	"restaurant-owner-panel/internal/security"
	"restaurant-owner-panel/internal/session"
)

// RouteGuard decides whether protected views may render. "No session record"
// always means unauthenticated. A record whose bearer token carries a
// readable, already-passed expiry is treated the same way; opaque tokens are
// left for the identity service to judge.
type RouteGuard struct {
	store      *session.Store
	onRedirect func()
	now        func() time.Time
	disposers  []bus.Dispose
}

// NewRouteGuard returns a guard over the store. onRedirect is invoked when a
// logout event arrives while mounted; it may be nil.
func NewRouteGuard(store *session.Store, onRedirect func()) *RouteGuard {
	return &RouteGuard{store: store, onRedirect: onRedirect, now: time.Now}
}

// Allow reports whether a protected view may render. The store is re-read on
// every navigation; the result is never cached across calls.
func (g *RouteGuard) Allow(ctx context.Context) bool {
	record, ok := g.store.Load(ctx)
	if !ok {
		return false
	}
	exp, err := security.Expiry(record.Token)
	if err != nil || exp.IsZero() {
		return true
	}
	return exp.After(g.now())
}

// Mount subscribes the guard to logout events so an active protected view is
// redirected immediately rather than on its next navigation.
func (g *RouteGuard) Mount(b *bus.Bus) {
	g.disposers = append(g.disposers,
		b.Subscribe(bus.EventSessionLoggedOut, func(bus.Event) {
			if g.onRedirect != nil {
				g.onRedirect()
			}
		}),
	)
}

// Unmount disposes the guard's subscriptions.
func (g *RouteGuard) Unmount() {
	for _, dispose := range g.disposers {
		dispose()
	}
	g.disposers = nil
}
