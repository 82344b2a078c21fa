// Package session implements the panel's single source of truth for "who is
// logged in", backed by durable key-value storage and announcing changes on
// the Notification Bus.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"restaurant-owner-panel/internal/bus"
	"restaurant-owner-panel/internal/session/domain"
	"restaurant-owner-panel/internal/storage"
	"restaurant-owner-panel/internal/telemetry"
)

const (
	// sessionKey holds the serialized session record.
	sessionKey = "session"
	// tokenKey holds the bearer token string; cleared together with the
	// session record on logout.
	tokenKey = "auth_token"
)

// A previous front end stored the literal strings "undefined" and "null"
// instead of removing the entry. Load treats both as absence and purges them.
var sentinelValues = map[string]bool{
	"undefined": true,
	"null":      true,
}

// Store owns the persisted session record. All other components hold only
// transient copies obtained through Load or bus subscriptions.
type Store struct {
	kv      storage.KV
	bus     *bus.Bus
	emitter telemetry.EventEmitter
}

// NewStore returns a Store over the given storage and bus. emitter may be
// nil; then no telemetry events are recorded.
func NewStore(kv storage.KV, b *bus.Bus, emitter telemetry.EventEmitter) *Store {
	return &Store{kv: kv, bus: b, emitter: emitter}
}

// Load reads the persisted session record. It reports false when the record
// is absent, malformed, or a stored sentinel; corrupt entries are purged.
// Load never fails: storage and parse errors are recovered as absence.
// Storage is re-read on every call so writes from another panel instance are
// observed.
func (s *Store) Load(ctx context.Context) (domain.Session, bool) {
	raw, err := s.kv.Get(ctx, sessionKey)
	if err != nil {
		return domain.Session{}, false
	}

	if sentinelValues[string(raw)] {
		_ = s.kv.Delete(ctx, sessionKey)
		return domain.Session{}, false
	}

	var record domain.Session
	if err := json.Unmarshal(raw, &record); err != nil {
		_ = s.kv.Delete(ctx, sessionKey)
		return domain.Session{}, false
	}
	if record.IsZero() {
		return domain.Session{}, false
	}
	return record, true
}

// Replace persists a new session record and publishes EventSessionChanged.
// From the caller's point of view the write is atomic: on error the previous
// record is left as it was.
func (s *Store) Replace(ctx context.Context, record domain.Session) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.kv.Put(ctx, sessionKey, payload); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	// Best-effort companion key; the record itself is authoritative.
	_ = s.kv.Put(ctx, tokenKey, []byte(record.Token))

	s.bus.Publish(bus.Event{Kind: bus.EventSessionChanged})
	telemetry.EmitAsync(s.emitter, telemetry.Event{
		Kind:    telemetry.EventSessionReplaced,
		OwnerID: record.ID,
	})
	return nil
}

// Clear removes the session record and the bearer token together and
// publishes EventSessionLoggedOut.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if err := s.kv.Delete(ctx, tokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}

	s.bus.Publish(bus.Event{Kind: bus.EventSessionLoggedOut})
	telemetry.EmitAsync(s.emitter, telemetry.Event{Kind: telemetry.EventSessionCleared})
	return nil
}
