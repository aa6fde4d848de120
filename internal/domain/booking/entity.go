package booking

import (
	"time"

	"shareit/internal/pkg/errs"
)

var (
	ErrBookingNotFound      = errs.NotFound("booking not found")
	ErrInvalidPeriod        = errs.Validation("booking start must be before end")
	ErrItemUnavailable      = errs.Validation("item is not available for booking")
	ErrOwnItem              = errs.NotFound("owner cannot book their own item")
	ErrNotOwner             = errs.NotOwner("only the item owner can approve the booking")
	ErrStatusAlreadyChanged = errs.Validation("status already changed")
	ErrInvalidStatus        = errs.Validation("invalid booking status")
)

type Period struct {
	start time.Time
	end   time.Time
}

// NewPeriod rejects empty and inverted ranges; start == end is invalid.
func NewPeriod(start, end time.Time) (Period, error) {
	if !start.Before(end) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{start: start, end: end}, nil
}

func (p Period) Start() time.Time { return p.start }
func (p Period) End() time.Time   { return p.end }

type Booking struct {
	id       int64
	itemID   int64
	bookerID int64
	start    time.Time
	end      time.Time
	status   Status
}

// NewBooking creates a WAITING booking. Item availability and ownership are
// checked by the caller, which holds the item.
func NewBooking(itemID, bookerID int64, period Period) *Booking {
	return &Booking{
		itemID:   itemID,
		bookerID: bookerID,
		start:    period.start,
		end:      period.end,
		status:   StatusWaiting,
	}
}

func ReconstructBooking(id, itemID, bookerID int64, start, end time.Time, status Status) *Booking {
	return &Booking{
		id:       id,
		itemID:   itemID,
		bookerID: bookerID,
		start:    start,
		end:      end,
		status:   status,
	}
}

// Decide returns the status an approval decision moves a WAITING booking to.
func (b *Booking) Decide(approved bool) (Status, error) {
	if b.status != StatusWaiting {
		return "", ErrStatusAlreadyChanged
	}
	if approved {
		return StatusApproved, nil
	}
	return StatusRejected, nil
}

func (b *Booking) IsBookedBy(userID int64) bool {
	return b.bookerID == userID
}

// IsCompletedAt reports an approved booking whose end has passed.
func (b *Booking) IsCompletedAt(now time.Time) bool {
	return b.status == StatusApproved && b.end.Before(now)
}

func (b *Booking) WithID(id int64) *Booking {
	cp := *b
	cp.id = id
	return &cp
}

func (b *Booking) WithStatus(status Status) *Booking {
	cp := *b
	cp.status = status
	return &cp
}

func (b *Booking) ID() int64        { return b.id }
func (b *Booking) ItemID() int64    { return b.itemID }
func (b *Booking) BookerID() int64  { return b.bookerID }
func (b *Booking) Start() time.Time { return b.start }
func (b *Booking) End() time.Time   { return b.end }
func (b *Booking) Status() Status   { return b.status }
