package booking

import (
	"strings"
	"time"

	"shareit/internal/pkg/errs"
)

// State is a listing filter relative to a reference instant.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

func ParseState(s string) (State, error) {
	st := State(strings.ToUpper(s))
	switch st {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return st, nil
	default:
		return "", errs.Validation("Unknown state: " + s)
	}
}

func (s State) String() string {
	return string(s)
}

// Matches applies the filter to a single booking. Bounds are strict:
// a booking ending exactly at now is neither CURRENT nor PAST.
func (s State) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return b.start.Before(now) && b.end.After(now)
	case StatePast:
		return b.end.Before(now)
	case StateFuture:
		return b.start.After(now)
	case StateWaiting:
		return b.status == StatusWaiting
	case StateRejected:
		return b.status == StatusRejected
	default:
		return false
	}
}
