package booking

import "time"

// Last is the approved booking with the latest start at or before now.
// Callers pass approved bookings only; nil when none qualifies.
func Last(bookings []*Booking, now time.Time) *Booking {
	var last *Booking
	for _, b := range bookings {
		if b.start.After(now) {
			continue
		}
		if last == nil || b.start.After(last.start) {
			last = b
		}
	}
	return last
}

// Next is the approved booking with the earliest start strictly after now.
func Next(bookings []*Booking, now time.Time) *Booking {
	var next *Booking
	for _, b := range bookings {
		if !b.start.After(now) {
			continue
		}
		if next == nil || b.start.Before(next.start) {
			next = b
		}
	}
	return next
}

// GroupByItem keeps the input order inside each group.
func GroupByItem(bookings []*Booking) map[int64][]*Booking {
	grouped := make(map[int64][]*Booking)
	for _, b := range bookings {
		grouped[b.itemID] = append(grouped[b.itemID], b)
	}
	return grouped
}
