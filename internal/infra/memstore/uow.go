package memstore

import (
	"context"

	"shareit/internal/usecase/shared"
)

type UoW struct {
	store *Store
}

func NewUoW(store *Store) shared.UnitOfWork {
	return &UoW{store: store}
}

// Within serializes writers on the store lock and discards every change
// made by fn when it returns an error.
func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	snap := u.store.snapshot()
	if err := fn(ctx, newTx(u.store, false)); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

func (u *UoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	return fn(ctx, newTx(u.store, true))
}

type memTx struct {
	users    *userRepository
	items    *itemRepository
	bookings *bookingRepository
	comments *commentRepository
}

func newTx(s *Store, readOnly bool) *memTx {
	return &memTx{
		users:    &userRepository{s: s, readOnly: readOnly},
		items:    &itemRepository{s: s, readOnly: readOnly},
		bookings: &bookingRepository{s: s, readOnly: readOnly},
		comments: &commentRepository{s: s, readOnly: readOnly},
	}
}

func (t *memTx) Users() shared.UserRepository       { return t.users }
func (t *memTx) Items() shared.ItemRepository       { return t.items }
func (t *memTx) Bookings() shared.BookingRepository { return t.bookings }
func (t *memTx) Comments() shared.CommentRepository { return t.comments }
