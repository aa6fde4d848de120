package queries

import (
	"context"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"
	"shareit/internal/pkg/clock"
	"shareit/internal/usecase/shared"
)

type BookingQueries interface {
	// GetByID hides bookings from anyone but the booker and the item owner.
	GetByID(ctx context.Context, userID, bookingID int64) (*BookingView, error)
	ListForBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*BookingView, error)
	ListForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*BookingView, error)
}

type bookingLister func(ctx context.Context, repo shared.BookingRepository, userID int64, filter shared.BookingFilter) ([]*booking.Booking, error)

type bookingQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingQueries(uow shared.UnitOfWork, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{uow: uow, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, userID, bookingID int64) (*BookingView, error) {
	var view *BookingView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return shared.TranslateRepoErr(err, booking.ErrBookingNotFound)
		}
		it, err := tx.Items().FindByID(ctx, b.ItemID())
		if err != nil {
			return shared.TranslateRepoErr(err, item.ErrItemNotFound)
		}
		if !b.IsBookedBy(userID) && !it.IsOwnedBy(userID) {
			return booking.ErrBookingNotFound
		}
		view = toBookingView(b, it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListForBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*BookingView, error) {
	return q.list(ctx, bookerID, state, from, size, func(ctx context.Context, repo shared.BookingRepository, userID int64, filter shared.BookingFilter) ([]*booking.Booking, error) {
		return repo.ListByBooker(ctx, userID, filter)
	})
}

func (q *bookingQueriesImpl) ListForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*BookingView, error) {
	return q.list(ctx, ownerID, state, from, size, func(ctx context.Context, repo shared.BookingRepository, userID int64, filter shared.BookingFilter) ([]*booking.Booking, error) {
		return repo.ListByOwner(ctx, userID, filter)
	})
}

// list checks the user before the state so an unknown user wins over an
// unknown state.
func (q *bookingQueriesImpl) list(ctx context.Context, userID int64, state string, from, size int, fetch bookingLister) ([]*BookingView, error) {
	page, err := PageOf(from, size)
	if err != nil {
		return nil, err
	}
	now := q.clock.Now()

	var views []*BookingView
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		exists, err := tx.Users().Exists(ctx, userID)
		if err != nil {
			return shared.TranslateRepoErr(err, nil)
		}
		if !exists {
			return user.ErrUserNotFound
		}

		st, err := booking.ParseState(state)
		if err != nil {
			return err
		}

		bookings, err := fetch(ctx, tx.Bookings(), userID, shared.BookingFilter{State: st, Now: now, Page: page})
		if err != nil {
			return shared.TranslateRepoErr(err, nil)
		}

		itemIDs := make([]int64, 0, len(bookings))
		for _, b := range bookings {
			itemIDs = append(itemIDs, b.ItemID())
		}
		items, err := tx.Items().FindByIDs(ctx, itemIDs)
		if err != nil {
			return shared.TranslateRepoErr(err, nil)
		}
		byID := make(map[int64]*item.Item, len(items))
		for _, it := range items {
			byID[it.ID()] = it
		}

		views = make([]*BookingView, 0, len(bookings))
		for _, b := range bookings {
			it, ok := byID[b.ItemID()]
			if !ok {
				continue
			}
			views = append(views, toBookingView(b, it))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
