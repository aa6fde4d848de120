package queries

import (
	"shareit/internal/domain/booking"
	"shareit/internal/domain/comment"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"
)

func toUserView(u *user.User) *UserView {
	return &UserView{
		ID:    u.ID(),
		Name:  u.Name(),
		Email: u.Email(),
	}
}

func toItemView(it *item.Item) *ItemView {
	return &ItemView{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		RequestID:   it.RequestID(),
	}
}

func toBookingShortView(b *booking.Booking) *BookingShortView {
	if b == nil {
		return nil
	}
	return &BookingShortView{
		ID:       b.ID(),
		BookerID: b.BookerID(),
		Start:    b.Start(),
		End:      b.End(),
		Status:   b.Status().String(),
	}
}

func toBookingView(b *booking.Booking, it *item.Item) *BookingView {
	return &BookingView{
		ID:          b.ID(),
		Start:       b.Start(),
		End:         b.End(),
		Status:      b.Status().String(),
		Item:        BookingItemRef{ID: it.ID(), Name: it.Name()},
		BookerID:    b.BookerID(),
		ItemOwnerID: it.OwnerID(),
	}
}

// authors maps user id to name; a missing author renders with an empty name.
func toCommentView(c *comment.Comment, authors map[int64]string) *CommentView {
	return &CommentView{
		ID:         c.ID(),
		ItemID:     c.ItemID(),
		AuthorID:   c.AuthorID(),
		AuthorName: authors[c.AuthorID()],
		Text:       c.Text(),
		Created:    c.Created(),
	}
}
