package order

import (
	"fmt"

	"livetrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
//
// State transitions:
//
//	pending ──> accepted ──> pickup ──> in_transit ──> delivered ──> rated
//	   │            │
//	   └────────────┴──> cancelled
//
// rated and cancelled are terminal. No transition moves a state backward.
// Rider location writes are permitted only while the order is in one of the
// trackable states: accepted, pickup and in_transit.
type Status int

const (
	// Unknown represents an invalid or undefined status. This value (0)
	// helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order exists but no rider has
	// taken it yet.
	Pending

	// Accepted means a rider has taken the order; the rider id is set from
	// this point on.
	Accepted

	// Pickup means the rider is collecting the order at the origin.
	Pickup

	// InTransit means the rider is on the way to the delivery location.
	InTransit

	// Delivered means the order has reached the customer. Live tracking
	// stops here.
	Delivered

	// Rated means the customer has rated the completed delivery. Terminal.
	Rated

	// Cancelled is reachable from pending or accepted only. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Accepted:  "accepted",
		Pickup:    "pickup",
		InTransit: "in_transit",
		Delivered: "delivered",
		Rated:     "rated",
		Cancelled: "cancelled",
	}
}

// transitions lists the forward edges of the state machine. Every
// (from, to) pair not present here is rejected.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Accepted, Cancelled},
		Accepted:  {Pickup, Cancelled},
		Pickup:    {InTransit},
		InTransit: {Delivered},
		Delivered: {Rated},
	}
}

// StatusFromString parses the wire representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status. It implements
// fmt.Stringer and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTrackable reports whether rider location writes are permitted in this
// status.
func (s Status) IsTrackable() bool {
	return s == Accepted || s == Pickup || s == InTransit
}

// IsActive reports whether the order still needs dispatch attention; used by
// the manager dashboard aggregate.
func (s Status) IsActive() bool {
	return s == Pending || s == Accepted || s == Pickup || s == InTransit
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Rated || s == Cancelled
}

// CanTransitionTo reports whether the edge from s to target exists.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target when the edge from s to target is valid, and
// an InvalidStateError otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidStateError(
			fmt.Sprintf("transition to %s", target), s.String())
	}

	return target, nil
}

// validateRiderConsistency enforces that a rider is assigned exactly in the
// statuses that imply one: accepted through rated.
func (s Status) validateRiderConsistency(hasRider bool) error {
	riderRequired := s == Accepted || s == Pickup || s == InTransit || s == Delivered || s == Rated

	if riderRequired && !hasRider {
		return errs.NewValueIsInvalidErrorWithCause("riderId",
			fmt.Errorf("status %s requires an assigned rider", s))
	}

	if !riderRequired && hasRider {
		return errs.NewValueIsInvalidErrorWithCause("riderId",
			fmt.Errorf("status %s does not allow an assigned rider", s))
	}

	return nil
}
