package bus

import "testing"

func TestPublishDeliversInRegistrationOrder(t *testing.T) {
	b := New()
	var order []string

	b.Subscribe(EventSessionChanged, func(Event) { order = append(order, "first") })
	b.Subscribe(EventSessionChanged, func(Event) { order = append(order, "second") })

	b.Publish(Event{Kind: EventSessionChanged})

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("expected both handlers in registration order, got %v", order)
	}
}

func TestPublishRunsAllHandlersBeforeReturning(t *testing.T) {
	b := New()
	calls := 0
	b.Subscribe(EventSessionChanged, func(Event) { calls++ })
	b.Subscribe(EventSessionChanged, func(Event) { calls++ })

	b.Publish(Event{Kind: EventSessionChanged})

	if calls != 2 {
		t.Fatalf("expected 2 handler calls before Publish returned, got %d", calls)
	}
}

func TestPublishWithNoSubscribersIsNoOp(t *testing.T) {
	b := New()
	// Must not panic or error.
	b.Publish(Event{Kind: EventSessionLoggedOut})
}

func TestPublishFiltersByKind(t *testing.T) {
	b := New()
	var got []EventKind
	b.Subscribe(EventSessionChanged, func(e Event) { got = append(got, e.Kind) })
	b.Subscribe(EventSessionLoggedOut, func(e Event) { got = append(got, e.Kind) })

	b.Publish(Event{Kind: EventSessionLoggedOut})

	if len(got) != 1 || got[0] != EventSessionLoggedOut {
		t.Fatalf("expected only the logged-out handler to run, got %v", got)
	}
}

func TestDisposeUnregisters(t *testing.T) {
	b := New()
	calls := 0
	dispose := b.Subscribe(EventSessionChanged, func(Event) { calls++ })

	b.Publish(Event{Kind: EventSessionChanged})
	dispose()
	b.Publish(Event{Kind: EventSessionChanged})

	if calls != 1 {
		t.Fatalf("expected 1 call after dispose, got %d", calls)
	}
}

func TestDisposeIsIdempotent(t *testing.T) {
	b := New()
	d1 := b.Subscribe(EventSessionChanged, func(Event) {})
	calls := 0
	b.Subscribe(EventSessionChanged, func(Event) { calls++ })

	d1()
	d1() // second dispose must not remove the surviving subscription

	b.Publish(Event{Kind: EventSessionChanged})
	if calls != 1 {
		t.Fatalf("expected surviving handler to run once, got %d", calls)
	}
}

func TestSubscribeDuringPublishTakesEffectNextPublish(t *testing.T) {
	b := New()
	lateCalls := 0
	b.Subscribe(EventSessionChanged, func(Event) {
		b.Subscribe(EventSessionChanged, func(Event) { lateCalls++ })
	})

	b.Publish(Event{Kind: EventSessionChanged})
	if lateCalls != 0 {
		t.Fatalf("handler added during publish must not run in same publish, got %d calls", lateCalls)
	}

	b.Publish(Event{Kind: EventSessionChanged})
	if lateCalls != 1 {
		t.Fatalf("handler added during previous publish should run once, got %d", lateCalls)
	}
}

func TestAdminUpdateCarriesSubjectKind(t *testing.T) {
	b := New()
	var got string
	b.Subscribe(EventSessionAdminUpdated, func(e Event) { got = e.SubjectKind })

	b.Publish(Event{Kind: EventSessionAdminUpdated, SubjectKind: "owner"})

	if got != "owner" {
		t.Fatalf("SubjectKind = %q, want %q", got, "owner")
	}
}
