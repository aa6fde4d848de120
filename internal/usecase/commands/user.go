package commands

import (
	"context"

	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/pkg/patch"
	"shareit/internal/usecase/shared"
)

type CreateUserResult struct {
	UserID int64
}

type UserCommands interface {
	Create(ctx context.Context, name, email string) (*CreateUserResult, error)
	Update(ctx context.Context, userID int64, p user.Patch) error
	Delete(ctx context.Context, userID int64) error
}

type userUseCaseImpl struct {
	uow    shared.UnitOfWork
	search SearchInvalidator
}

func NewUserUseCase(uow shared.UnitOfWork, search SearchInvalidator) UserCommands {
	return &userUseCaseImpl{uow: uow, search: search}
}

func (uc *userUseCaseImpl) Create(ctx context.Context, name, email string) (*CreateUserResult, error) {
	u, err := user.NewUser(name, email)
	if err != nil {
		return nil, err
	}

	var createdID int64
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		taken, err := tx.Users().EmailTaken(ctx, u.Email(), 0)
		if err != nil {
			return shared.TranslateRepoErr(err, nil)
		}
		if taken {
			return user.ErrEmailDuplicate
		}

		created, err := tx.Users().Create(ctx, u)
		if err != nil {
			return translateUserWriteErr(err)
		}
		createdID = created.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateUserResult{UserID: createdID}, nil
}

func (uc *userUseCaseImpl) Update(ctx context.Context, userID int64, p user.Patch) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return shared.TranslateRepoErr(err, user.ErrUserNotFound)
		}
		emailChanged := patch.Changed(p.Email, u.Email())
		if err := u.Apply(p); err != nil {
			return err
		}

		if emailChanged {
			taken, err := tx.Users().EmailTaken(ctx, u.Email(), u.ID())
			if err != nil {
				return shared.TranslateRepoErr(err, nil)
			}
			if taken {
				return user.ErrEmailDuplicate
			}
		}

		if err := tx.Users().Update(ctx, u); err != nil {
			return translateUserWriteErr(err)
		}
		return nil
	})
}

// Delete cascades to the user's items, so cached search results go too.
func (uc *userUseCaseImpl) Delete(ctx context.Context, userID int64) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return shared.TranslateRepoErr(tx.Users().Delete(ctx, userID), nil)
	})
	if err != nil {
		return err
	}

	invalidateSearch(ctx, uc.search)
	return nil
}

// The unique index catches writers that raced past EmailTaken.
func translateUserWriteErr(err error) error {
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return user.ErrEmailDuplicate
	}
	return shared.TranslateRepoErr(err, user.ErrUserNotFound)
}
