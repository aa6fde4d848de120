package shared

import (
	"time"

	"shareit/internal/domain/booking"
)

// Page is a row window: Offset rows skipped, at most Limit returned.
type Page struct {
	Offset int
	Limit  int
}

type BookingFilter struct {
	State booking.State
	Now   time.Time
	Page  Page
}
