package memstore

import (
	"context"
	"slices"

	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
)

var errReadOnly = errs.New("cannot write in a read-only transaction")

func guardWrite(readOnly bool, msg string) error {
	if readOnly {
		return infra.WrapRepoErr(msg, errReadOnly)
	}
	return nil
}

type userRepository struct {
	s        *Store
	readOnly bool
}

func (r *userRepository) Create(_ context.Context, u *user.User) (*user.User, error) {
	if err := guardWrite(r.readOnly, "failed to create user"); err != nil {
		return nil, err
	}
	if r.emailOwner(u.Email()) != 0 {
		return nil, infra.WrapRepoErr("failed to create user: uq_users_email", nil, infra.KindDuplicateKey)
	}
	stored := u.WithID(r.s.userSeq.Add(1))
	r.s.users[stored.ID()] = stored
	return stored.WithID(stored.ID()), nil
}

func (r *userRepository) Update(_ context.Context, u *user.User) error {
	if err := guardWrite(r.readOnly, "failed to update user"); err != nil {
		return err
	}
	if _, ok := r.s.users[u.ID()]; !ok {
		return infra.NotFound("user not found")
	}
	if owner := r.emailOwner(u.Email()); owner != 0 && owner != u.ID() {
		return infra.WrapRepoErr("failed to update user: uq_users_email", nil, infra.KindDuplicateKey)
	}
	r.s.users[u.ID()] = u.WithID(u.ID())
	return nil
}

// Delete cascades to the user's items, their bookings and comments, and to
// bookings and comments the user made.
func (r *userRepository) Delete(_ context.Context, id int64) error {
	if err := guardWrite(r.readOnly, "failed to delete user"); err != nil {
		return err
	}
	if _, ok := r.s.users[id]; !ok {
		return nil
	}
	delete(r.s.users, id)

	owned := make(map[int64]struct{})
	for itemID, it := range r.s.items {
		if it.OwnerID() == id {
			owned[itemID] = struct{}{}
			delete(r.s.items, itemID)
		}
	}
	for bookingID, b := range r.s.bookings {
		if _, ok := owned[b.ItemID()]; ok || b.BookerID() == id {
			delete(r.s.bookings, bookingID)
		}
	}
	for commentID, c := range r.s.comments {
		if _, ok := owned[c.ItemID()]; ok || c.AuthorID() == id {
			delete(r.s.comments, commentID)
		}
	}
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, infra.NotFound("user not found")
	}
	return u.WithID(id), nil
}

func (r *userRepository) FindByIDs(_ context.Context, ids []int64) ([]*user.User, error) {
	out := make([]*user.User, 0, len(ids))
	for _, id := range sortedUnique(ids) {
		if u, ok := r.s.users[id]; ok {
			out = append(out, u.WithID(id))
		}
	}
	return out, nil
}

func (r *userRepository) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.s.users[id]
	return ok, nil
}

func (r *userRepository) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	owner := r.emailOwner(email)
	return owner != 0 && owner != excludeID, nil
}

func (r *userRepository) List(_ context.Context) ([]*user.User, error) {
	out := make([]*user.User, 0, len(r.s.users))
	for _, id := range sortedKeys(r.s.users) {
		out = append(out, r.s.users[id].WithID(id))
	}
	return out, nil
}

// emailOwner returns the id holding email, or 0.
func (r *userRepository) emailOwner(email string) int64 {
	for id, u := range r.s.users {
		if u.Email() == email {
			return id
		}
	}
	return 0
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func sortedUnique(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
