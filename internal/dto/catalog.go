package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/timz-app/timz-api/internal/model"
)

type CreateServiceRequest struct {
	Title          string            `json:"title" binding:"required"`
	Description    string            `json:"description,omitempty"`
	BasePrice      *float64          `json:"base_price,omitempty"`
	PricingType    model.PricingType `json:"pricing_type,omitempty"`
	Duration       *int              `json:"duration,omitempty"`
	CategoryID     uuid.UUID         `json:"category_id" binding:"required"`
	ServiceGroupID *uuid.UUID        `json:"service_group_id,omitempty"`
	OptionsSchema  datatypes.JSON    `json:"options_schema,omitempty"`
	IsPublic       *bool             `json:"is_public,omitempty"`
}

type UpdateServiceRequest struct {
	Title          *string            `json:"title,omitempty"`
	Description    *string            `json:"description,omitempty"`
	BasePrice      *float64           `json:"base_price,omitempty"`
	PricingType    *model.PricingType `json:"pricing_type,omitempty"`
	Duration       *int               `json:"duration,omitempty"`
	ServiceGroupID *uuid.UUID         `json:"service_group_id,omitempty"`
	IsPublic       *bool              `json:"is_public,omitempty"`
	IsActive       *bool              `json:"is_active,omitempty"`
}

// PublicServiceFilter narrows the public listing.
type PublicServiceFilter struct {
	CategoryID     *uuid.UUID `form:"category_id"`
	ProID          *uuid.UUID `form:"pro_id"`
	ServiceGroupID *uuid.UUID `form:"service_group_id"`
}

type CreateServiceGroupRequest struct {
	Name     string `json:"name" binding:"required"`
	Position int    `json:"position,omitempty"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
