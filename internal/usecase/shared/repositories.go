package shared

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/comment"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"
)

// Repositories report missing rows as infra.KindNotFound and unique
// violations as infra.KindDuplicateKey.

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (*user.User, error)
	Update(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*user.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*user.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// EmailTaken ignores the user with excludeID so a user may keep its own email.
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	List(ctx context.Context) ([]*user.User, error)
}

type ItemRepository interface {
	Create(ctx context.Context, it *item.Item) (*item.Item, error)
	Update(ctx context.Context, it *item.Item) error
	FindByID(ctx context.Context, id int64) (*item.Item, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*item.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*item.Item, error)
	Search(ctx context.Context, text string) ([]*item.Item, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (*booking.Booking, error)
	FindByID(ctx context.Context, id int64) (*booking.Booking, error)
	// CompareAndSetStatus reports false when the stored status is no longer from.
	CompareAndSetStatus(ctx context.Context, id int64, from, to booking.Status) (bool, error)
	ListByBooker(ctx context.Context, bookerID int64, filter BookingFilter) ([]*booking.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, filter BookingFilter) ([]*booking.Booking, error)
	ListApprovedByItems(ctx context.Context, itemIDs []int64) ([]*booking.Booking, error)
	HasCompleted(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error)
	FindByID(ctx context.Context, id int64) (*comment.Comment, error)
	ListByItems(ctx context.Context, itemIDs []int64) ([]*comment.Comment, error)
}
