package request

import (
	"shareit/internal/domain/item"
)

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=255"`
	Description string `json:"description" binding:"required,notblank,max=2000"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId" binding:"omitempty,gt=0"`
}

func (r *CreateItemRequest) ToSpec() item.Spec {
	return item.Spec{
		Name:        r.Name,
		Description: r.Description,
		Available:   r.Available,
		RequestID:   r.RequestID,
	}
}

type UpdateItemRequest struct {
	Name        *string `json:"name" binding:"omitempty,notblank,max=255"`
	Description *string `json:"description" binding:"omitempty,notblank,max=2000"`
	Available   *bool   `json:"available"`
}

func (r *UpdateItemRequest) ToPatch() item.Patch {
	return item.Patch{
		Name:        r.Name,
		Description: r.Description,
		Available:   r.Available,
	}
}

type SearchItemsQuery struct {
	Text string `form:"text"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required,notblank,max=2000"`
}
