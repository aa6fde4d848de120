package queries

import (
	"context"

	"shareit/internal/domain/user"
	"shareit/internal/usecase/shared"
)

type UserQueries interface {
	GetByID(ctx context.Context, id int64) (*UserView, error)
	List(ctx context.Context) ([]*UserView, error)
}

type userQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewUserQueries(uow shared.UnitOfWork) UserQueries {
	return &userQueriesImpl{uow: uow}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id int64) (*UserView, error) {
	var view *UserView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByID(ctx, id)
		if err != nil {
			return shared.TranslateRepoErr(err, user.ErrUserNotFound)
		}
		view = toUserView(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *userQueriesImpl) List(ctx context.Context) ([]*UserView, error) {
	var views []*UserView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		users, err := tx.Users().List(ctx)
		if err != nil {
			return shared.TranslateRepoErr(err, nil)
		}
		views = make([]*UserView, 0, len(users))
		for _, u := range users {
			views = append(views, toUserView(u))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
