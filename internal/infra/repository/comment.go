package repository

import (
	"context"

	"shareit/internal/domain/comment"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/infra/repository/converter"
	"shareit/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
)

const (
	createCommentSQL = `INSERT INTO comments (item_id, author_id, text, created)
VALUES ($1, $2, $3, $4)
RETURNING id, item_id, author_id, text, created`

	findCommentByIDSQL    = `SELECT id, item_id, author_id, text, created FROM comments WHERE id = $1`
	listCommentsByItemSQL = `SELECT id, item_id, author_id, text, created FROM comments WHERE item_id = ANY($1) ORDER BY id`
)

type CommentRepository struct {
	db db.DBTX
}

func NewCommentRepository(dbtx db.DBTX) *CommentRepository {
	return &CommentRepository{db: dbtx}
}

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	rows, err := r.db.Query(ctx, createCommentSQL, c.ItemID(), c.AuthorID(), c.Text(), pgconv.TimeToPgtype(c.Created()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create comment", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.CommentRow])
	if err != nil {
		return nil, wrapWriteErr("failed to create comment", err)
	}
	return converter.CommentFromRow(row), nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id int64) (*comment.Comment, error) {
	rows, err := r.db.Query(ctx, findCommentByIDSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find comment by ID", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.CommentRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NotFound("comment not found")
		}
		return nil, infra.WrapRepoErr("failed to find comment by ID", err)
	}
	return converter.CommentFromRow(row), nil
}

func (r *CommentRepository) ListByItems(ctx context.Context, itemIDs []int64) ([]*comment.Comment, error) {
	if len(itemIDs) == 0 {
		return []*comment.Comment{}, nil
	}
	rows, err := r.db.Query(ctx, listCommentsByItemSQL, itemIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list comments", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.CommentRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list comments", err)
	}
	return converter.CommentsFromRows(list), nil
}
