package dto

import (
	"github.com/timz-app/timz-api/internal/model"
)

// UpdateUserRequest patches identity fields. Pointer fields distinguish
// "not provided" from zero values; email is immutable.
type UpdateUserRequest struct {
	FullName     *string `json:"full_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

// UpdateProfileClientRequest patches a client profile; only provided fields
// change.
type UpdateProfileClientRequest struct {
	Phone   *string        `json:"phone,omitempty"`
	Address *model.Address `json:"address,omitempty"`
}

// UpdateProfileProRequest patches a pro profile. The business name may change
// but never to empty.
type UpdateProfileProRequest struct {
	BusinessName *string        `json:"business_name,omitempty"`
	Website      *string        `json:"website,omitempty"`
	Address      *model.Address `json:"address,omitempty"`
}

// AddRoleRequest grants a role. Pro requires a business name; the remaining
// fields seed the new profile row.
type AddRoleRequest struct {
	Role         model.Role     `json:"role" binding:"required"`
	BusinessName string         `json:"business_name,omitempty"`
	Website      string         `json:"website,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	Address      *model.Address `json:"address,omitempty"`
}
