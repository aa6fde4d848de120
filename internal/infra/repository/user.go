package repository

import (
	"context"

	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/infra/repository/converter"
	"shareit/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
)

const (
	createUserSQL     = `INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id, name, email`
	updateUserSQL     = `UPDATE users SET name = $2, email = $3 WHERE id = $1`
	deleteUserSQL     = `DELETE FROM users WHERE id = $1`
	findUserByIDSQL   = `SELECT id, name, email FROM users WHERE id = $1`
	findUsersByIDsSQL = `SELECT id, name, email FROM users WHERE id = ANY($1) ORDER BY id`
	userExistsSQL     = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	emailTakenSQL     = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
	listUsersSQL      = `SELECT id, name, email FROM users ORDER BY id`
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	rows, err := r.db.Query(ctx, createUserSQL, u.Name(), u.Email())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create user", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.UserRow])
	if err != nil {
		return nil, wrapWriteErr("failed to create user", err)
	}
	return converter.UserFromRow(row), nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	tag, err := r.db.Exec(ctx, updateUserSQL, u.ID(), u.Name(), u.Email())
	if err != nil {
		return wrapWriteErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, deleteUserSQL, id); err != nil {
		return infra.WrapRepoErr("failed to delete user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	rows, err := r.db.Query(ctx, findUserByIDSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.UserRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NotFound("user not found")
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return converter.UserFromRow(row), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []int64) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}
	rows, err := r.db.Query(ctx, findUsersByIDsSQL, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find users by IDs", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.UserRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan users", err)
	}
	return converter.UsersFromRows(list), nil
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, userExistsSQL, id).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check user existence", err)
	}
	return exists, nil
}

func (r *UserRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var taken bool
	if err := r.db.QueryRow(ctx, emailTakenSQL, email, excludeID).Scan(&taken); err != nil {
		return false, infra.WrapRepoErr("failed to check email", err)
	}
	return taken, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	rows, err := r.db.Query(ctx, listUsersSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.UserRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan users", err)
	}
	return converter.UsersFromRows(list), nil
}

// wrapWriteErr classifies constraint violations raised by INSERT/UPDATE.
func wrapWriteErr(msg string, err error) error {
	if constraint, ok := pgconv.IsUniqueViolation(err); ok {
		return infra.WrapRepoErr(msg+": "+constraint, err, infra.KindDuplicateKey)
	}
	if constraint, ok := pgconv.IsForeignKeyViolation(err); ok {
		return infra.WrapRepoErr(msg+": "+constraint, err, infra.KindForeignKeyViolated)
	}
	return infra.WrapRepoErr(msg, err)
}
