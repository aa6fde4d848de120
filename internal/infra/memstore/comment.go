package memstore

import (
	"context"

	"shareit/internal/domain/comment"
	"shareit/internal/infra"
)

type commentRepository struct {
	s        *Store
	readOnly bool
}

func (r *commentRepository) Create(_ context.Context, c *comment.Comment) (*comment.Comment, error) {
	if err := guardWrite(r.readOnly, "failed to create comment"); err != nil {
		return nil, err
	}
	if _, ok := r.s.items[c.ItemID()]; !ok {
		return nil, infra.WrapRepoErr("failed to create comment: fk_comments_item", nil, infra.KindForeignKeyViolated)
	}
	stored := c.WithID(r.s.commentSeq.Add(1))
	r.s.comments[stored.ID()] = stored
	return stored.WithID(stored.ID()), nil
}

func (r *commentRepository) FindByID(_ context.Context, id int64) (*comment.Comment, error) {
	c, ok := r.s.comments[id]
	if !ok {
		return nil, infra.NotFound("comment not found")
	}
	return c.WithID(id), nil
}

func (r *commentRepository) ListByItems(_ context.Context, itemIDs []int64) ([]*comment.Comment, error) {
	wanted := make(map[int64]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}
	out := make([]*comment.Comment, 0)
	for _, id := range sortedKeys(r.s.comments) {
		if c := r.s.comments[id]; hasKey(wanted, c.ItemID()) {
			out = append(out, c.WithID(id))
		}
	}
	return out, nil
}

func hasKey(m map[int64]struct{}, k int64) bool {
	_, ok := m[k]
	return ok
}
