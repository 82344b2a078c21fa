// Package order implements the order workflow: fetching the owner's orders
// from the order collaborator and advancing them along the lifecycle only
// after the collaborator acknowledges each transition.
package order

import (
	"context"
	"fmt"

	"restaurant-owner-panel/internal/order/domain"
	sessiondomain "restaurant-owner-panel/internal/session/domain"
	"restaurant-owner-panel/internal/telemetry"
)

// API is the slice of the order collaborator the workflow needs.
type API interface {
	List(ctx context.Context, sess sessiondomain.Session) ([]domain.Order, error)
	Count(ctx context.Context, sess sessiondomain.Session) (int, error)
	UpdateStatus(ctx context.Context, sess sessiondomain.Session, orderID string, target domain.Status) error
}

// Service coordinates order reads and lifecycle transitions.
type Service struct {
	api     API
	emitter telemetry.EventEmitter
}

// NewService returns a Service over the given collaborator client.
// emitter may be nil.
func NewService(api API, emitter telemetry.EventEmitter) *Service {
	return &Service{api: api, emitter: emitter}
}

// Orders fetches the owner's orders read-only.
func (s *Service) Orders(ctx context.Context, sess sessiondomain.Session) ([]domain.Order, error) {
	return s.api.List(ctx, sess)
}

// PendingCount re-derives the action-needed badge count from the
// collaborator.
func (s *Service) PendingCount(ctx context.Context, sess sessiondomain.Session) (int, error) {
	return s.api.Count(ctx, sess)
}

// Transition moves o to target. The target is checked against the lifecycle
// table before the collaborator is asked, so a stale view cannot submit an
// illegal mutation; the local record is advanced only after the collaborator
// acknowledges. On any failure o is left unchanged and the error is surfaced;
// there is no implicit retry.
func (s *Service) Transition(ctx context.Context, sess sessiondomain.Session, o *domain.Order, target domain.Status) error {
	if o == nil {
		return fmt.Errorf("transition: order is required")
	}
	from := o.Status
	if !domain.CanTransition(from, target) {
		return fmt.Errorf("transition order %s: %w: %s -> %s", o.ID, domain.ErrInvalidTransition, from, target)
	}

	if err := s.api.UpdateStatus(ctx, sess, o.ID, target); err != nil {
		return fmt.Errorf("transition order %s: %w", o.ID, err)
	}

	if err := domain.ApplyTransition(o, target); err != nil {
		// The table was consulted above; reaching this means the record
		// changed underneath us between check and apply.
		return fmt.Errorf("transition order %s: %w", o.ID, err)
	}

	telemetry.EmitAsync(s.emitter, telemetry.Event{
		Kind:    telemetry.EventOrderTransitioned,
		OwnerID: sess.ID,
		OrderID: o.ID,
		Detail:  fmt.Sprintf("%s -> %s", from, target),
	})
	return nil
}
