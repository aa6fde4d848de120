//go:build unit || e2e

package builder

import (
	"shareit/internal/domain/item"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/usecase/queries"
)

type ItemBuilder struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

func NewItemBuilder() *ItemBuilder {
	available := true
	return &ItemBuilder{
		ID:          1,
		OwnerID:     1,
		Name:        "Drill",
		Description: "Cordless drill with two batteries",
		Available:   &available,
	}
}

func (b *ItemBuilder) With(mutate func(*ItemBuilder)) *ItemBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ItemBuilder) BuildSpec() item.Spec {
	return item.Spec{
		Name:        b.Name,
		Description: b.Description,
		Available:   b.Available,
		RequestID:   b.RequestID,
	}
}

func (b *ItemBuilder) BuildDomain() (*item.Item, error) {
	return item.NewItem(b.OwnerID, b.BuildSpec())
}

func (b *ItemBuilder) BuildStored() *item.Item {
	return item.ReconstructItem(b.ID, b.OwnerID, b.Name, b.Description, b.Available != nil && *b.Available, b.RequestID)
}

func (b *ItemBuilder) BuildCreateRequestDTO() reqdto.CreateItemRequest {
	return reqdto.CreateItemRequest{
		Name:        b.Name,
		Description: b.Description,
		Available:   b.Available,
		RequestID:   b.RequestID,
	}
}

func (b *ItemBuilder) BuildView() *queries.ItemView {
	return &queries.ItemView{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Name:        b.Name,
		Description: b.Description,
		Available:   b.Available != nil && *b.Available,
		RequestID:   b.RequestID,
	}
}

func (b *ItemBuilder) BuildDetailView() *queries.ItemDetailView {
	return &queries.ItemDetailView{
		ItemView: *b.BuildView(),
		Comments: []*queries.CommentView{},
	}
}

// Fluent builder methods
func (b *ItemBuilder) WithID(id int64) *ItemBuilder {
	b.ID = id
	return b
}

func (b *ItemBuilder) WithOwner(ownerID int64) *ItemBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.Name = name
	return b
}

func (b *ItemBuilder) WithDescription(description string) *ItemBuilder {
	b.Description = description
	return b
}

func (b *ItemBuilder) WithAvailable(available bool) *ItemBuilder {
	b.Available = &available
	return b
}

func (b *ItemBuilder) WithoutAvailable() *ItemBuilder {
	b.Available = nil
	return b
}
