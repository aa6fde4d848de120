//go:build unit || e2e

package builder

import (
	"time"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/usecase/queries"
)

type BookingBuilder struct {
	ID          int64
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	Start       time.Time
	End         time.Time
	Status      booking.Status
}

// NewBookingBuilder starts one day after now and lasts one day.
func NewBookingBuilder() *BookingBuilder {
	start := time.Now().UTC().Truncate(time.Second).Add(24 * time.Hour)
	return &BookingBuilder{
		ID:          1,
		ItemID:      1,
		ItemName:    "Drill",
		ItemOwnerID: 1,
		BookerID:    2,
		Start:       start,
		End:         start.Add(24 * time.Hour),
		Status:      booking.StatusWaiting,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	period, err := booking.NewPeriod(b.Start, b.End)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(b.ItemID, b.BookerID, period), nil
}

func (b *BookingBuilder) BuildStored() *booking.Booking {
	return booking.ReconstructBooking(b.ID, b.ItemID, b.BookerID, b.Start, b.End, b.Status)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ItemID: b.ItemID,
		Start:  &reqdto.DateTime{Time: b.Start},
		End:    &reqdto.DateTime{Time: b.End},
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:          b.ID,
		Start:       b.Start,
		End:         b.End,
		Status:      b.Status.String(),
		Item:        queries.BookingItemRef{ID: b.ItemID, Name: b.ItemName},
		BookerID:    b.BookerID,
		ItemOwnerID: b.ItemOwnerID,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id int64) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithItem(itemID, ownerID int64) *BookingBuilder {
	b.ItemID = itemID
	b.ItemOwnerID = ownerID
	return b
}

func (b *BookingBuilder) WithBooker(bookerID int64) *BookingBuilder {
	b.BookerID = bookerID
	return b
}

func (b *BookingBuilder) WithPeriod(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}
