package request

import (
	"time"

	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
)

var (
	ErrStartInPast   = errs.Validation("booking start must not be in the past")
	ErrEndNotFuture  = errs.Validation("booking end must be in the future")
	ErrApprovedParam = errs.Validation("query parameter approved must be true or false")
)

type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  *DateTime `json:"start" binding:"required"`
	End    *DateTime `json:"end" binding:"required"`
}

// Validate applies the request-time bounds: start now or later, end later
// than now. Ordering of start and end is a domain rule.
func (r *CreateBookingRequest) Validate(now time.Time) error {
	// wire values carry whole seconds
	floor := now.Truncate(time.Second)
	if r.Start.Before(floor) {
		return ErrStartInPast
	}
	if !r.End.After(now) {
		return ErrEndNotFuture
	}
	return nil
}

func (r *CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		ItemID: r.ItemID,
		Start:  r.Start.Time,
		End:    r.End.Time,
	}
}

type ListBookingsQuery struct {
	State string `form:"state,default=ALL"`
	From  int    `form:"from,default=0" binding:"min=0"`
	Size  int    `form:"size,default=10" binding:"min=1"`
}
