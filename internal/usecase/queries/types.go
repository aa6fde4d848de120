package queries

import (
	"time"
)

type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ItemView is also the search cache payload, hence the json tags.
type ItemView struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"ownerId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

type BookingShortView struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
	Status   string
}

type CommentView struct {
	ID         int64
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Text       string
	Created    time.Time
}

// ItemDetailView carries the owner-only booking neighbours; they stay nil
// for everyone else.
type ItemDetailView struct {
	ItemView
	LastBooking *BookingShortView
	NextBooking *BookingShortView
	Comments    []*CommentView
}

type BookingItemRef struct {
	ID   int64
	Name string
}

type BookingView struct {
	ID          int64
	Start       time.Time
	End         time.Time
	Status      string
	Item        BookingItemRef
	BookerID    int64
	ItemOwnerID int64
}
