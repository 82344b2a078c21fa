// Package telemetry records the panel's operational events (session changes,
// order transitions, poll failures) for export as OTel log records.
package telemetry

import (
	"context"
	"log"
	"time"
)

// emitTimeout is the max time allowed for a single async emit.
const emitTimeout = 5 * time.Second

// EventKind identifies the type of a panel event.
type EventKind string

const (
	EventSessionReplaced   EventKind = "session_replaced"
	EventSessionCleared    EventKind = "session_cleared"
	EventOrderTransitioned EventKind = "order_transitioned"
	EventPollFailed        EventKind = "poll_failed"
)

// Event is one operational panel event.
type Event struct {
	Kind      EventKind
	OwnerID   string
	OrderID   string
	Detail    string
	CreatedAt time.Time
}

// EventEmitter records a panel event. Implementations are best-effort and
// must not block the UI path.
type EventEmitter interface {
	Emit(ctx context.Context, event Event) error
}

// EmitAsync runs Emit in a goroutine with a short timeout so the caller is
// not blocked. Errors are logged. emitter may be nil; then nothing happens.
// The goroutine uses context.Background() so view teardown does not abort an
// in-flight emit.
func EmitAsync(emitter EventEmitter, event Event) {
	if emitter == nil {
		return
	}
	go func() {
		emitCtx, cancel := context.WithTimeout(context.Background(), emitTimeout)
		defer cancel()
		if err := emitter.Emit(emitCtx, event); err != nil {
			log.Printf("telemetry: async emit failed: %v", err)
		}
	}()
}
