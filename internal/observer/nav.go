package observer

import (
	"context"
	"sync"

	"restaurant-owner-panel/internal/bus"
	"restaurant-owner-panel/internal/session"
)

// NavState is the navigation bar's view of the session.
type NavState struct {
	LoggedIn       bool
	Username       string
	RestaurantName string
	Avatar         string
}

// NavBar derives the navigation bar state from the session store.
type NavBar struct {
	store *session.Store

	mu        sync.Mutex
	state     NavState
	disposers []bus.Dispose
}

// NewNavBar returns an unmounted navigation bar observer.
func NewNavBar(store *session.Store) *NavBar {
	return &NavBar{store: store}
}

// Mount seeds the state synchronously from the store and subscribes to
// session events. Re-rendering on EventSessionChanged is idempotent: the
// state is always re-derived from the store, never accumulated.
func (n *NavBar) Mount(ctx context.Context, b *bus.Bus) {
	n.refresh(ctx)
	rerender := func(bus.Event) { n.refresh(ctx) }
	n.disposers = append(n.disposers,
		b.Subscribe(bus.EventSessionChanged, rerender),
		b.Subscribe(bus.EventSessionLoggedOut, rerender),
	)
}

// Unmount disposes the bar's subscriptions.
func (n *NavBar) Unmount() {
	for _, dispose := range n.disposers {
		dispose()
	}
	n.disposers = nil
}

// State returns the current view state.
func (n *NavBar) State() NavState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

func (n *NavBar) refresh(ctx context.Context) {
	record, ok := n.store.Load(ctx)
	n.mu.Lock()
	defer n.mu.Unlock()
	if !ok {
		n.state = NavState{}
		return
	}
	n.state = NavState{
		LoggedIn:       true,
		Username:       record.Username,
		RestaurantName: record.RestaurantName,
		Avatar:         record.Avatar,
	}
}
