package request

import (
	"shareit/internal/domain/user"
)

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,notblank,max=255"`
	Email string `json:"email" binding:"required,email,max=512"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,notblank,max=255"`
	Email *string `json:"email" binding:"omitempty,email,max=512"`
}

func (r *UpdateUserRequest) ToPatch() user.Patch {
	return user.Patch{Name: r.Name, Email: r.Email}
}
