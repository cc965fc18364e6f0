package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PricingType describes how a service is priced.
type PricingType string

const (
	PricingFixed        PricingType = "fixed"
	PricingStartingFrom PricingType = "starting_from"
	PricingQuote        PricingType = "quote"
)

func ValidPricingType(p PricingType) bool {
	switch p {
	case PricingFixed, PricingStartingFrom, PricingQuote:
		return true
	}
	return false
}

// RequiresPrice reports whether the pricing type needs a base price and duration.
func (p PricingType) RequiresPrice() bool {
	return p == PricingFixed || p == PricingStartingFrom
}

// Service is a bookable offering published by a pro.
type Service struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProID          uuid.UUID      `gorm:"column:pro_id;type:uuid;index;not null" json:"pro_id"`
	Title          string         `gorm:"column:title;not null" json:"title"`
	Description    string         `gorm:"column:description" json:"description,omitempty"`
	BasePrice      *float64       `gorm:"column:base_price" json:"base_price,omitempty"`
	PricingType    PricingType    `gorm:"column:pricing_type;default:'fixed';not null" json:"pricing_type"`
	Duration       *int           `gorm:"column:duration" json:"duration,omitempty"` // minutes
	CategoryID     uuid.UUID      `gorm:"column:category_id;type:uuid;not null" json:"category_id"`
	ServiceGroupID *uuid.UUID     `gorm:"column:service_group_id;type:uuid" json:"service_group_id,omitempty"`
	OptionsSchema  datatypes.JSON `gorm:"column:options_schema" json:"options_schema,omitempty"`
	IsPublic       bool           `gorm:"column:is_public;default:true;not null" json:"is_public"`
	IsActive       bool           `gorm:"column:is_active;default:true;not null" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ServiceGroup is a pro-defined grouping used to arrange their services.
type ServiceGroup struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProID     uuid.UUID `gorm:"column:pro_id;type:uuid;index;not null" json:"pro_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Position  int       `gorm:"column:position;default:0;not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ServiceGroup) TableName() string {
	return "service_groups"
}

func (g *ServiceGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Category is an admin-curated service category.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "services_categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
