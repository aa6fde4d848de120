package memstore

import (
	"maps"
	"sync"
	"sync/atomic"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/comment"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"
)

// Store keeps every collection in maps keyed by id. Entities are cloned on
// the way in and out so callers never alias stored state. Locking is done by
// UoW, not by the repositories.
type Store struct {
	mu sync.RWMutex

	users    map[int64]*user.User
	items    map[int64]*item.Item
	bookings map[int64]*booking.Booking
	comments map[int64]*comment.Comment

	userSeq    atomic.Int64
	itemSeq    atomic.Int64
	bookingSeq atomic.Int64
	commentSeq atomic.Int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]*user.User),
		items:    make(map[int64]*item.Item),
		bookings: make(map[int64]*booking.Booking),
		comments: make(map[int64]*comment.Comment),
	}
}

type snapshot struct {
	users    map[int64]*user.User
	items    map[int64]*item.Item
	bookings map[int64]*booking.Booking
	comments map[int64]*comment.Comment
}

// Stored entities are replaced, never mutated, so a shallow copy is enough.
func (s *Store) snapshot() snapshot {
	return snapshot{
		users:    maps.Clone(s.users),
		items:    maps.Clone(s.items),
		bookings: maps.Clone(s.bookings),
		comments: maps.Clone(s.comments),
	}
}

// Sequences are not rewound, matching database sequence semantics.
func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.items = snap.items
	s.bookings = snap.bookings
	s.comments = snap.comments
}
