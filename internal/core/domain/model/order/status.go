package order

import (
	"fmt"

	"orderboard/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct business workflow.
//
// State transitions:
//
//	Created ──> Accepted ──> ReadyForPickup ──> Completed
//
// No transition skips a state in the user-driven path, and Completed is final.
// Status is a value object that validates state transitions and provides the
// wire representations used by the order backend and push events.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first received.
	// Orders in this status are waiting to be accepted by the restaurant.
	Created

	// Accepted indicates the restaurant has accepted the order and the
	// kitchen may begin work on its items.
	Accepted

	// ReadyForPickup indicates all kitchen work is done and the order is
	// waiting for the customer.
	ReadyForPickup

	// Completed indicates the order has been picked up.
	// This is a final state with no further transitions allowed.
	Completed
)

// getStatusStrings returns the wire representation of every Status value.
// These strings are what the order backend and push events carry.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Created:        "CREATED",
		Accepted:       "ACCEPTED",
		ReadyForPickup: "READY_FOR_PICKUP",
		Completed:      "PICKED_UP",
	}
}

// getValidStatusStrings returns only valid Status values, to support validation
// and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:        "CREATED",
		Accepted:       "ACCEPTED",
		ReadyForPickup: "READY_FOR_PICKUP",
		Completed:      "PICKED_UP",
	}
}

// ParseStatus converts a wire string into a Status.
// Returns a ValueIsInvalidError for strings that do not name a valid status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
// Valid statuses are Created, Accepted, ReadyForPickup and Completed.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// This method implements the fmt.Stringer interface and is safe to call on any
// Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed
}

// next returns the single status that may follow s in the workflow.
func (s Status) next() (Status, bool) {
	switch s {
	case Created:
		return Accepted, true
	case Accepted:
		return ReadyForPickup, true
	case ReadyForPickup:
		return Completed, true
	default:
		return Unknown, false
	}
}

// CanTransitionTo checks that moving from s to target is a valid forward step
// in the workflow without performing the transition.
//
// Valid transitions:
//   - Created -> Accepted
//   - Accepted -> ReadyForPickup
//   - ReadyForPickup -> Completed
//
// Completed is terminal and Unknown has no transitions.
//
// Returns:
//   - nil if the transition is allowed
//   - error with details if the transition is not allowed
func (s Status) CanTransitionTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	next, ok := s.next()
	if !ok || next != target {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s cannot transition to %s", s.String(), target.String()),
		)
	}
	return nil
}

// TransitionTo validates and performs the transition from s to target.
//
// Returns:
//   - (target, nil) on a valid transition
//   - (0, error) if the transition is not allowed from the current status
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.CanTransitionTo(target); err != nil {
		return 0, err
	}
	return target, nil
}
