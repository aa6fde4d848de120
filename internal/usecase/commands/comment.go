package commands

import (
	"context"

	"shareit/internal/domain/comment"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"
	"shareit/internal/pkg/clock"
	"shareit/internal/usecase/shared"
)

type AddCommentResult struct {
	CommentID int64
}

type CommentCommands interface {
	Add(ctx context.Context, authorID, itemID int64, text string) (*AddCommentResult, error)
}

type commentUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCommentUseCase(uow shared.UnitOfWork, clk clock.Clock) CommentCommands {
	return &commentUseCaseImpl{uow: uow, clock: clk}
}

// Add requires an approved booking of the item by the author that has
// already ended.
func (uc *commentUseCaseImpl) Add(ctx context.Context, authorID, itemID int64, text string) (*AddCommentResult, error) {
	now := uc.clock.Now()

	var createdID int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		exists, err := tx.Users().Exists(ctx, authorID)
		if err != nil {
			return shared.TranslateRepoErr(err, nil)
		}
		if !exists {
			return user.ErrUserNotFound
		}
		if _, err := tx.Items().FindByID(ctx, itemID); err != nil {
			return shared.TranslateRepoErr(err, item.ErrItemNotFound)
		}

		c, err := comment.NewComment(itemID, authorID, text, now)
		if err != nil {
			return err
		}

		eligible, err := tx.Bookings().HasCompleted(ctx, authorID, itemID, now)
		if err != nil {
			return shared.TranslateRepoErr(err, nil)
		}
		if !eligible {
			return comment.ErrNotEligible
		}

		created, err := tx.Comments().Create(ctx, c)
		if err != nil {
			return shared.TranslateRepoErr(err, nil)
		}
		createdID = created.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &AddCommentResult{CommentID: createdID}, nil
}
