package session

import (
	"context"
	"errors"
	"testing"

	"restaurant-owner-panel/internal/bus"
	"restaurant-owner-panel/internal/session/domain"
	"restaurant-owner-panel/internal/storage"
	"restaurant-owner-panel/internal/storage/memory"
)

func newTestStore() (*Store, *memory.Store, *bus.Bus) {
	kv := memory.NewStore()
	b := bus.New()
	return NewStore(kv, b, nil), kv, b
}

func TestLoadAbsent(t *testing.T) {
	store, _, _ := newTestStore()

	if _, ok := store.Load(context.Background()); ok {
		t.Fatal("Load should report absence for an empty store")
	}
}

func TestReplaceThenLoad(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()

	record := domain.Session{ID: "u1", Token: "tok", Username: "Ana", RestaurantName: "Trattoria"}
	if err := store.Replace(ctx, record); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, ok := store.Load(ctx)
	if !ok {
		t.Fatal("Load should find the replaced record")
	}
	if got != record {
		t.Fatalf("Load = %+v, want %+v", got, record)
	}
}

func TestReplaceRejectsInvalidRecord(t *testing.T) {
	store, _, _ := newTestStore()

	err := store.Replace(context.Background(), domain.Session{Username: "no-id"})
	if !errors.Is(err, domain.ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
}

func TestLoadToleratesSentinels(t *testing.T) {
	for _, sentinel := range []string{"undefined", "null"} {
		t.Run(sentinel, func(t *testing.T) {
			store, kv, _ := newTestStore()
			ctx := context.Background()

			if err := kv.Put(ctx, "session", []byte(sentinel)); err != nil {
				t.Fatalf("seed sentinel: %v", err)
			}

			if _, ok := store.Load(ctx); ok {
				t.Fatal("sentinel value should read as absence")
			}
			// The corrupt entry is purged.
			if _, err := kv.Get(ctx, "session"); !errors.Is(err, storage.ErrNotFound) {
				t.Fatalf("sentinel entry should be purged, got %v", err)
			}
		})
	}
}

func TestLoadToleratesMalformedJSON(t *testing.T) {
	store, kv, _ := newTestStore()
	ctx := context.Background()

	if err := kv.Put(ctx, "session", []byte("{not json")); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}

	if _, ok := store.Load(ctx); ok {
		t.Fatal("malformed value should read as absence")
	}
	if _, err := kv.Get(ctx, "session"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("corrupt entry should be purged, got %v", err)
	}
}

func TestLastWriteWins(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()

	first := domain.Session{ID: "u1", Token: "t1"}
	second := domain.Session{ID: "u2", Token: "t2"}
	if err := store.Replace(ctx, first); err != nil {
		t.Fatalf("replace first: %v", err)
	}
	if err := store.Replace(ctx, second); err != nil {
		t.Fatalf("replace second: %v", err)
	}

	got, ok := store.Load(ctx)
	if !ok || got.ID != "u2" {
		t.Fatalf("expected last write to win, got %+v ok=%v", got, ok)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := store.Load(ctx); ok {
		t.Fatal("Load after Clear should report absence")
	}
}

func TestClearRemovesTokenKey(t *testing.T) {
	store, kv, _ := newTestStore()
	ctx := context.Background()

	if err := store.Replace(ctx, domain.Session{ID: "u1", Token: "bearer"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, err := kv.Get(ctx, "auth_token"); err != nil {
		t.Fatalf("token key should be written on replace: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := kv.Get(ctx, "auth_token"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("token key should be cleared with the session, got %v", err)
	}
}

func TestReplacePublishesSessionChanged(t *testing.T) {
	store, _, b := newTestStore()
	var events []bus.EventKind
	b.Subscribe(bus.EventSessionChanged, func(e bus.Event) { events = append(events, e.Kind) })
	b.Subscribe(bus.EventSessionLoggedOut, func(e bus.Event) { events = append(events, e.Kind) })

	if err := store.Replace(context.Background(), domain.Session{ID: "u1", Token: "t"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}

	want := []bus.EventKind{bus.EventSessionChanged, bus.EventSessionLoggedOut}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events[%d] = %v, want %v", i, events[i], want[i])
		}
	}
}

func TestClearWithNoSubscribersIsNoOp(t *testing.T) {
	store, _, _ := newTestStore()
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("clear with no subscribers should succeed: %v", err)
	}
}
