package memstore

import (
	"context"
	"slices"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/usecase/shared"
)

type bookingRepository struct {
	s        *Store
	readOnly bool
}

func (r *bookingRepository) Create(_ context.Context, b *booking.Booking) (*booking.Booking, error) {
	if err := guardWrite(r.readOnly, "failed to create booking"); err != nil {
		return nil, err
	}
	if _, ok := r.s.items[b.ItemID()]; !ok {
		return nil, infra.WrapRepoErr("failed to create booking: fk_bookings_item", nil, infra.KindForeignKeyViolated)
	}
	if _, ok := r.s.users[b.BookerID()]; !ok {
		return nil, infra.WrapRepoErr("failed to create booking: fk_bookings_booker", nil, infra.KindForeignKeyViolated)
	}
	stored := b.WithID(r.s.bookingSeq.Add(1))
	r.s.bookings[stored.ID()] = stored
	return stored.WithID(stored.ID()), nil
}

func (r *bookingRepository) FindByID(_ context.Context, id int64) (*booking.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, infra.NotFound("booking not found")
	}
	return b.WithID(id), nil
}

func (r *bookingRepository) CompareAndSetStatus(_ context.Context, id int64, from, to booking.Status) (bool, error) {
	if err := guardWrite(r.readOnly, "failed to update booking status"); err != nil {
		return false, err
	}
	b, ok := r.s.bookings[id]
	if !ok || b.Status() != from {
		return false, nil
	}
	r.s.bookings[id] = b.WithStatus(to)
	return true, nil
}

func (r *bookingRepository) ListByBooker(_ context.Context, bookerID int64, filter shared.BookingFilter) ([]*booking.Booking, error) {
	return r.list(filter, func(b *booking.Booking) bool { return b.IsBookedBy(bookerID) }), nil
}

func (r *bookingRepository) ListByOwner(_ context.Context, ownerID int64, filter shared.BookingFilter) ([]*booking.Booking, error) {
	return r.list(filter, func(b *booking.Booking) bool {
		it, ok := r.s.items[b.ItemID()]
		return ok && it.IsOwnedBy(ownerID)
	}), nil
}

func (r *bookingRepository) ListApprovedByItems(_ context.Context, itemIDs []int64) ([]*booking.Booking, error) {
	wanted := make(map[int64]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}
	out := make([]*booking.Booking, 0)
	for _, id := range sortedKeys(r.s.bookings) {
		b := r.s.bookings[id]
		if _, ok := wanted[b.ItemID()]; ok && b.Status() == booking.StatusApproved {
			out = append(out, b.WithID(id))
		}
	}
	slices.SortStableFunc(out, func(a, b *booking.Booking) int { return a.Start().Compare(b.Start()) })
	return out, nil
}

func (r *bookingRepository) HasCompleted(_ context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	for _, b := range r.s.bookings {
		if b.ItemID() == itemID && b.IsBookedBy(bookerID) && b.IsCompletedAt(now) {
			return true, nil
		}
	}
	return false, nil
}

// list orders by start descending then id descending and cuts the page.
func (r *bookingRepository) list(filter shared.BookingFilter, keep func(*booking.Booking) bool) []*booking.Booking {
	matched := make([]*booking.Booking, 0)
	for id, b := range r.s.bookings {
		if keep(b) && filter.State.Matches(b, filter.Now) {
			matched = append(matched, b.WithID(id))
		}
	}
	slices.SortFunc(matched, func(a, b *booking.Booking) int {
		if c := b.Start().Compare(a.Start()); c != 0 {
			return c
		}
		switch {
		case a.ID() > b.ID():
			return -1
		case a.ID() < b.ID():
			return 1
		default:
			return 0
		}
	})

	lo := min(filter.Page.Offset, len(matched))
	hi := min(lo+filter.Page.Limit, len(matched))
	return matched[lo:hi]
}
