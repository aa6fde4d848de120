package commands

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"
	"shareit/internal/usecase/shared"
)

type CreateBookingRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type CreateBookingResult struct {
	BookingID int64
}

type BookingCommands interface {
	Create(ctx context.Context, bookerID int64, req CreateBookingRequest) (*CreateBookingResult, error)
	// Approve moves a WAITING booking to APPROVED or REJECTED exactly once.
	Approve(ctx context.Context, ownerID, bookingID int64, approved bool) error
}

type bookingUseCaseImpl struct {
	uow     shared.UnitOfWork
	metrics BookingMetrics
}

func NewBookingUseCase(uow shared.UnitOfWork, metrics BookingMetrics) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, metrics: metrics}
}

func (uc *bookingUseCaseImpl) Create(ctx context.Context, bookerID int64, req CreateBookingRequest) (*CreateBookingResult, error) {
	var createdID int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		exists, err := tx.Users().Exists(ctx, bookerID)
		if err != nil {
			return shared.TranslateRepoErr(err, nil)
		}
		if !exists {
			return user.ErrUserNotFound
		}

		it, err := tx.Items().FindByID(ctx, req.ItemID)
		if err != nil {
			return shared.TranslateRepoErr(err, item.ErrItemNotFound)
		}
		if it.IsOwnedBy(bookerID) {
			return booking.ErrOwnItem
		}
		if !it.Available() {
			return booking.ErrItemUnavailable
		}

		period, err := booking.NewPeriod(req.Start, req.End)
		if err != nil {
			return err
		}

		created, err := tx.Bookings().Create(ctx, booking.NewBooking(it.ID(), bookerID, period))
		if err != nil {
			return shared.TranslateRepoErr(err, nil)
		}
		createdID = created.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.BookingCreated()
	return &CreateBookingResult{BookingID: createdID}, nil
}

func (uc *bookingUseCaseImpl) Approve(ctx context.Context, ownerID, bookingID int64, approved bool) error {
	var decided booking.Status
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return shared.TranslateRepoErr(err, booking.ErrBookingNotFound)
		}
		it, err := tx.Items().FindByID(ctx, b.ItemID())
		if err != nil {
			return shared.TranslateRepoErr(err, booking.ErrBookingNotFound)
		}
		if !it.IsOwnedBy(ownerID) {
			return booking.ErrNotOwner
		}

		next, err := b.Decide(approved)
		if err != nil {
			return err
		}
		ok, err := tx.Bookings().CompareAndSetStatus(ctx, b.ID(), booking.StatusWaiting, next)
		if err != nil {
			return shared.TranslateRepoErr(err, nil)
		}
		if !ok {
			return booking.ErrStatusAlreadyChanged
		}
		decided = next
		return nil
	})
	if err != nil {
		return err
	}

	uc.metrics.BookingDecided(decided.String())
	return nil
}
