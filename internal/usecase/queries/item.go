package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/comment"
	"shareit/internal/domain/item"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"
)

var ErrCommentNotFound = errs.NotFound("comment not found")

// SearchCache resolves the entry key once per search: Set takes the key Get
// returned, so a result loaded before an invalidation is filed under the
// generation it was read in. An empty key means nothing may be stored.
// Failures are logged and fall through to storage.
type SearchCache interface {
	Get(ctx context.Context, text string) (items []*ItemView, key string, ok bool, err error)
	Set(ctx context.Context, key string, items []*ItemView) error
}

type ItemQueries interface {
	// GetByID fills booking neighbours only when requesterID is the owner.
	GetByID(ctx context.Context, requesterID *int64, itemID int64) (*ItemDetailView, error)
	ListForOwner(ctx context.Context, ownerID int64) ([]*ItemDetailView, error)
	Search(ctx context.Context, text string) ([]*ItemView, error)
	GetComment(ctx context.Context, commentID int64) (*CommentView, error)
}

type itemQueriesImpl struct {
	uow   shared.UnitOfWork
	cache SearchCache
	clock clock.Clock
}

func NewItemQueries(uow shared.UnitOfWork, cache SearchCache, clk clock.Clock) ItemQueries {
	return &itemQueriesImpl{uow: uow, cache: cache, clock: clk}
}

func (q *itemQueriesImpl) GetByID(ctx context.Context, requesterID *int64, itemID int64) (*ItemDetailView, error) {
	now := q.clock.Now()

	var view *ItemDetailView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		it, err := tx.Items().FindByID(ctx, itemID)
		if err != nil {
			return shared.TranslateRepoErr(err, item.ErrItemNotFound)
		}

		var approved []*booking.Booking
		if requesterID != nil && it.IsOwnedBy(*requesterID) {
			approved, err = tx.Bookings().ListApprovedByItems(ctx, []int64{it.ID()})
			if err != nil {
				return shared.TranslateRepoErr(err, nil)
			}
		}

		comments, authors, err := loadComments(ctx, tx, []int64{it.ID()})
		if err != nil {
			return err
		}

		view = buildDetail(it, approved, comments, authors, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ListForOwner runs three batched reads in one snapshot and groups them in
// memory against a single instant.
func (q *itemQueriesImpl) ListForOwner(ctx context.Context, ownerID int64) ([]*ItemDetailView, error) {
	now := q.clock.Now()

	var views []*ItemDetailView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		items, err := tx.Items().ListByOwner(ctx, ownerID)
		if err != nil {
			return shared.TranslateRepoErr(err, nil)
		}

		ids := make([]int64, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID())
		}

		approved, err := tx.Bookings().ListApprovedByItems(ctx, ids)
		if err != nil {
			return shared.TranslateRepoErr(err, nil)
		}
		comments, authors, err := loadComments(ctx, tx, ids)
		if err != nil {
			return err
		}

		bookingsByItem := booking.GroupByItem(approved)
		commentsByItem := make(map[int64][]*comment.Comment, len(items))
		for _, c := range comments {
			commentsByItem[c.ItemID()] = append(commentsByItem[c.ItemID()], c)
		}

		views = make([]*ItemDetailView, 0, len(items))
		for _, it := range items {
			views = append(views, buildDetail(it, bookingsByItem[it.ID()], commentsByItem[it.ID()], authors, now))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *itemQueriesImpl) Search(ctx context.Context, text string) ([]*ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []*ItemView{}, nil
	}

	cached, key, ok, err := q.cache.Get(ctx, text)
	if err != nil {
		slog.WarnContext(ctx, "search cache read failed", "error", err.Error())
	} else if ok {
		return cached, nil
	}

	var views []*ItemView
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		items, err := tx.Items().Search(ctx, text)
		if err != nil {
			return shared.TranslateRepoErr(err, nil)
		}
		views = make([]*ItemView, 0, len(items))
		for _, it := range items {
			views = append(views, toItemView(it))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if key == "" {
		return views, nil
	}
	if err := q.cache.Set(ctx, key, views); err != nil {
		slog.WarnContext(ctx, "search cache write failed", "error", err.Error())
	}
	return views, nil
}

func (q *itemQueriesImpl) GetComment(ctx context.Context, commentID int64) (*CommentView, error) {
	var view *CommentView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Comments().FindByID(ctx, commentID)
		if err != nil {
			return shared.TranslateRepoErr(err, ErrCommentNotFound)
		}
		authors, err := authorNames(ctx, tx, []*comment.Comment{c})
		if err != nil {
			return err
		}
		view = toCommentView(c, authors)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func buildDetail(it *item.Item, approved []*booking.Booking, comments []*comment.Comment, authors map[int64]string, now time.Time) *ItemDetailView {
	view := &ItemDetailView{
		ItemView:    *toItemView(it),
		LastBooking: toBookingShortView(booking.Last(approved, now)),
		NextBooking: toBookingShortView(booking.Next(approved, now)),
		Comments:    make([]*CommentView, 0, len(comments)),
	}
	for _, c := range comments {
		view.Comments = append(view.Comments, toCommentView(c, authors))
	}
	return view
}

func loadComments(ctx context.Context, tx shared.Tx, itemIDs []int64) ([]*comment.Comment, map[int64]string, error) {
	comments, err := tx.Comments().ListByItems(ctx, itemIDs)
	if err != nil {
		return nil, nil, shared.TranslateRepoErr(err, nil)
	}
	authors, err := authorNames(ctx, tx, comments)
	if err != nil {
		return nil, nil, err
	}
	return comments, authors, nil
}

func authorNames(ctx context.Context, tx shared.Tx, comments []*comment.Comment) (map[int64]string, error) {
	names := make(map[int64]string)
	if len(comments) == 0 {
		return names, nil
	}
	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorID())
	}
	users, err := tx.Users().FindByIDs(ctx, ids)
	if err != nil {
		return nil, shared.TranslateRepoErr(err, nil)
	}
	for _, u := range users {
		names[u.ID()] = u.Name()
	}
	return names, nil
}

