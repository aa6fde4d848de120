package memstore

import (
	"context"

	"shareit/internal/domain/item"
	"shareit/internal/infra"
)

type itemRepository struct {
	s        *Store
	readOnly bool
}

func (r *itemRepository) Create(_ context.Context, it *item.Item) (*item.Item, error) {
	if err := guardWrite(r.readOnly, "failed to create item"); err != nil {
		return nil, err
	}
	if _, ok := r.s.users[it.OwnerID()]; !ok {
		return nil, infra.WrapRepoErr("failed to create item: fk_items_owner", nil, infra.KindForeignKeyViolated)
	}
	stored := it.WithID(r.s.itemSeq.Add(1))
	r.s.items[stored.ID()] = stored
	return stored.WithID(stored.ID()), nil
}

func (r *itemRepository) Update(_ context.Context, it *item.Item) error {
	if err := guardWrite(r.readOnly, "failed to update item"); err != nil {
		return err
	}
	if _, ok := r.s.items[it.ID()]; !ok {
		return infra.NotFound("item not found")
	}
	r.s.items[it.ID()] = it.WithID(it.ID())
	return nil
}

func (r *itemRepository) FindByID(_ context.Context, id int64) (*item.Item, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, infra.NotFound("item not found")
	}
	return it.WithID(id), nil
}

func (r *itemRepository) FindByIDs(_ context.Context, ids []int64) ([]*item.Item, error) {
	out := make([]*item.Item, 0, len(ids))
	for _, id := range sortedUnique(ids) {
		if it, ok := r.s.items[id]; ok {
			out = append(out, it.WithID(id))
		}
	}
	return out, nil
}

func (r *itemRepository) ListByOwner(_ context.Context, ownerID int64) ([]*item.Item, error) {
	return r.filter(func(it *item.Item) bool { return it.IsOwnedBy(ownerID) }), nil
}

func (r *itemRepository) Search(_ context.Context, text string) ([]*item.Item, error) {
	return r.filter(func(it *item.Item) bool { return it.MatchesText(text) }), nil
}

func (r *itemRepository) filter(keep func(*item.Item) bool) []*item.Item {
	out := make([]*item.Item, 0)
	for _, id := range sortedKeys(r.s.items) {
		if it := r.s.items[id]; keep(it) {
			out = append(out, it.WithID(id))
		}
	}
	return out
}
