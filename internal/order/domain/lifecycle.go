package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a target status is not reachable from
// the order's current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// Transition is a single allowed edge in the order lifecycle.
type Transition struct {
	From   Status
	To     Status
	Action string
}

// transitionTable is the one place the lifecycle is defined. Both "which
// actions to offer" (NextTransitions) and "is this mutation legal"
// (CanTransition, ApplyTransition) consult it, so the two can never drift.
var transitionTable = []Transition{
	{From: StatusPending, To: StatusConfirmed, Action: "accept"},
	{From: StatusPending, To: StatusCancelled, Action: "decline"},
	{From: StatusConfirmed, To: StatusPreparing, Action: "start preparing"},
	{From: StatusPreparing, To: StatusReady, Action: "mark ready"},
	{From: StatusReady, To: StatusDelivered, Action: "mark delivered"},
}

// CanTransition reports whether target is reachable from current in one step.
func CanTransition(current, target Status) bool {
	for _, tr := range transitionTable {
		if tr.From == current && tr.To == target {
			return true
		}
	}
	return false
}

// NextTransitions returns the allowed edges out of current, in table order.
// Terminal statuses have none.
func NextTransitions(current Status) []Transition {
	var out []Transition
	for _, tr := range transitionTable {
		if tr.From == current {
			out = append(out, tr)
		}
	}
	return out
}

// ActionLabel returns the action label for the current-to-target edge, or false
// when the edge is not in the table.
func ActionLabel(current, target Status) (string, bool) {
	for _, tr := range transitionTable {
		if tr.From == current && tr.To == target {
			return tr.Action, true
		}
	}
	return "", false
}

// IsTerminal reports whether no transition leaves the given status.
func IsTerminal(s Status) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ActionNeeded reports whether orders in this status count toward the
// pending-work badge.
func ActionNeeded(s Status) bool {
	return s.IsValid() && !IsTerminal(s)
}

// ApplyTransition advances the order to target. It refuses any target not in
// the table row for the order's current status, even if the caller's UI
// offered it, as a defense against stale views. On rejection the order is
// unchanged; on success only Status changes.
func ApplyTransition(o *Order, target Status) error {
	if o == nil {
		return errors.New("order is required")
	}
	if !CanTransition(o.Status, target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, target)
	}
	o.Status = target
	return nil
}
