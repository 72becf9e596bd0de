package parcel

import (
	"fmt"

	"routekeeper/internal/pkg/errs"
)

// Status is the lifecycle state of a package.
//
// State transitions:
//
//	Pending ──> Delivered ──┐
//	               ^        │
//	               └────────┘
//	   (repeated delivery refreshes the timestamp)
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending packages still have to be dropped off and take part in stops.
	Pending

	// Delivered packages are kept for the retention window, then purged.
	Delivered
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Delivered: "delivered",
}

// ParseStatus converts the persisted status name into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsOutOfRangeError("status", int(s), int(Pending), int(Delivered))
	}
	return nil
}

// String returns the persisted name of the status, or "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Deliver transitions the status to Delivered. Delivering twice is allowed.
func (s Status) Deliver() (Status, error) {
	if s != Pending && s != Delivered {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to deliver", s),
		)
	}
	return Delivered, nil
}
