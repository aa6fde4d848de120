package repository

import (
	"context"
	"strings"

	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/infra/repository/converter"
	"shareit/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
)

const itemColumns = `id, owner_id, name, description, available, request_id`

const (
	createItemSQL = `INSERT INTO items (owner_id, name, description, available, request_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + itemColumns

	updateItemSQL       = `UPDATE items SET name = $2, description = $3, available = $4 WHERE id = $1`
	findItemByIDSQL     = `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	findItemsByIDsSQL   = `SELECT ` + itemColumns + ` FROM items WHERE id = ANY($1) ORDER BY id`
	listItemsByOwnerSQL = `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 ORDER BY id`

	searchItemsSQL = `SELECT ` + itemColumns + ` FROM items
WHERE available = TRUE
  AND (name ILIKE '%' || $1 || '%' ESCAPE '\' OR description ILIKE '%' || $1 || '%' ESCAPE '\')
ORDER BY id`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type ItemRepository struct {
	db db.DBTX
}

func NewItemRepository(dbtx db.DBTX) *ItemRepository {
	return &ItemRepository{db: dbtx}
}

func (r *ItemRepository) Create(ctx context.Context, it *item.Item) (*item.Item, error) {
	rows, err := r.db.Query(ctx, createItemSQL,
		it.OwnerID(),
		it.Name(),
		it.Description(),
		it.Available(),
		pgconv.Int64PtrToPgtype(it.RequestID()),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create item", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.ItemRow])
	if err != nil {
		return nil, wrapWriteErr("failed to create item", err)
	}
	return converter.ItemFromRow(row), nil
}

func (r *ItemRepository) Update(ctx context.Context, it *item.Item) error {
	tag, err := r.db.Exec(ctx, updateItemSQL, it.ID(), it.Name(), it.Description(), it.Available())
	if err != nil {
		return wrapWriteErr("failed to update item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("item not found")
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*item.Item, error) {
	rows, err := r.db.Query(ctx, findItemByIDSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.ItemRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NotFound("item not found")
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}
	return converter.ItemFromRow(row), nil
}

func (r *ItemRepository) FindByIDs(ctx context.Context, ids []int64) ([]*item.Item, error) {
	if len(ids) == 0 {
		return []*item.Item{}, nil
	}
	return r.collect(ctx, "failed to find items by IDs", findItemsByIDsSQL, ids)
}

func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*item.Item, error) {
	return r.collect(ctx, "failed to list items by owner", listItemsByOwnerSQL, ownerID)
}

// Search expects non-blank text; blank queries are answered by the caller.
func (r *ItemRepository) Search(ctx context.Context, text string) ([]*item.Item, error) {
	return r.collect(ctx, "failed to search items", searchItemsSQL, likeEscaper.Replace(text))
}

func (r *ItemRepository) collect(ctx context.Context, msg, query string, args ...any) ([]*item.Item, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.ItemRow])
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return converter.ItemsFromRows(list), nil
}
