package commands

import (
	"context"

	"shareit/internal/domain/item"
	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/usecase/shared"
)

type CreateItemResult struct {
	ItemID int64
}

type ItemCommands interface {
	Create(ctx context.Context, ownerID int64, spec item.Spec) (*CreateItemResult, error)
	// Update reports a missing item and a foreign item the same way.
	Update(ctx context.Context, userID, itemID int64, patch item.Patch) error
}

type itemUseCaseImpl struct {
	uow    shared.UnitOfWork
	search SearchInvalidator
}

func NewItemUseCase(uow shared.UnitOfWork, search SearchInvalidator) ItemCommands {
	return &itemUseCaseImpl{uow: uow, search: search}
}

func (uc *itemUseCaseImpl) Create(ctx context.Context, ownerID int64, spec item.Spec) (*CreateItemResult, error) {
	var createdID int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		exists, err := tx.Users().Exists(ctx, ownerID)
		if err != nil {
			return shared.TranslateRepoErr(err, nil)
		}
		if !exists {
			return user.ErrUserNotFound
		}

		it, err := item.NewItem(ownerID, spec)
		if err != nil {
			return err
		}

		created, err := tx.Items().Create(ctx, it)
		if err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return user.ErrUserNotFound
			}
			return shared.TranslateRepoErr(err, nil)
		}
		createdID = created.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateSearch(ctx, uc.search)
	return &CreateItemResult{ItemID: createdID}, nil
}

func (uc *itemUseCaseImpl) Update(ctx context.Context, userID, itemID int64, patch item.Patch) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		it, err := tx.Items().FindByID(ctx, itemID)
		if err != nil {
			return shared.TranslateRepoErr(err, item.ErrItemNotFound)
		}
		if !it.IsOwnedBy(userID) {
			return item.ErrNotItemOwner
		}
		if err := it.Apply(patch); err != nil {
			return err
		}
		return shared.TranslateRepoErr(tx.Items().Update(ctx, it), item.ErrItemNotFound)
	})
	if err != nil {
		return err
	}

	invalidateSearch(ctx, uc.search)
	return nil
}
