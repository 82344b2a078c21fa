// Package bus provides the in-process Notification Bus used to signal session
// changes across independently-mounted panel regions. Delivery is synchronous,
// best-effort, and never persisted: a subscriber attached after a publish does
// not observe past events.
package bus

import "sync"

// EventKind identifies the type of a notification event.
type EventKind string

const (
	// EventSessionChanged signals the persisted session record was replaced.
	EventSessionChanged EventKind = "SESSION_CHANGED"
	// EventSessionLoggedOut signals the session record was cleared.
	EventSessionLoggedOut EventKind = "SESSION_LOGGED_OUT"
	// EventSessionAdminUpdated signals an administrator mutated the session
	// out-of-band; subscribers should refetch the authoritative record.
	EventSessionAdminUpdated EventKind = "SESSION_ADMIN_UPDATED"
)

// Event is a notification delivered to subscribers.
type Event struct {
	Kind EventKind
	// SubjectKind qualifies admin updates (e.g. "owner", "restaurant").
	// Empty for other event kinds.
	SubjectKind string
}

// Handler receives a published event. Handlers run synchronously during
// Publish and must not block indefinitely; a blocked handler stalls sibling
// handlers and the publisher.
type Handler func(Event)

// Dispose unregisters a subscription. Calling it more than once is safe.
type Dispose func()

type subscription struct {
	id      uint64
	kind    EventKind
	handler Handler
}

// Bus is a multi-producer multi-consumer publish/subscribe channel scoped to
// the process lifetime. The zero value is not usable; call New.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers handler for events of the given kind and returns a
// disposer. Subscribers must dispose on teardown; the bus never
// garbage-collects stale subscriptions on its own.
func (b *Bus) Subscribe(kind EventKind, handler Handler) Dispose {
	if handler == nil {
		return func() {}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, kind: kind, handler: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, sub := range b.subs {
				if sub.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish invokes all handlers currently registered for the event's kind,
// synchronously, in registration order. Handlers registered or disposed
// during delivery take effect for subsequent publishes only. Publishing with
// no subscribers is a no-op.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	matched := make([]Handler, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.kind == event.Kind {
			matched = append(matched, sub.handler)
		}
	}
	b.mu.Unlock()

	// Dispatch outside the lock so handlers may subscribe or dispose
	// re-entrantly.
	for _, handler := range matched {
		handler(event)
	}
}
