package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role is a marketplace role a user can hold.
type Role string

const (
	RoleClient Role = "client"
	RolePro    Role = "pro"
	RoleAdmin  Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleClient, RolePro, RoleAdmin:
		return true
	}
	return false
}

const DefaultProfileImage = "/static/images/default-avatar.avif"

// User is the identity record. Roles are stored as a JSON-backed set; all
// membership changes go through HasRole/AddRole/RemoveRole so the "a user
// always holds at least one role" invariant is enforced in one place.
type User struct {
	ID           uuid.UUID                 `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string                    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string                    `gorm:"column:password_hash;not null" json:"-"`
	FullName     string                    `gorm:"column:full_name;not null" json:"full_name"`
	Phone        string                    `gorm:"column:phone" json:"phone,omitempty"`
	ProfileImage string                    `gorm:"column:profile_image;not null" json:"profile_image"`
	Roles        datatypes.JSONSlice[Role] `gorm:"column:roles;not null" json:"roles"`
	TokenVersion int                       `gorm:"column:token_version;default:0;not null" json:"-"`
	IsActive     bool                      `gorm:"column:is_active;default:true;not null" json:"is_active"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`

	ProfileClient *ProfileClient `gorm:"foreignKey:UserID" json:"profile_client,omitempty"`
	ProfilePro    *ProfilePro    `gorm:"foreignKey:UserID" json:"profile_pro,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.ProfileImage == "" {
		u.ProfileImage = DefaultProfileImage
	}
	return nil
}

// HasRole reports whether the user holds role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user holds at least one of roles.
func (u *User) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}

// AddRole appends role to the set. Returns false if already present.
func (u *User) AddRole(role Role) bool {
	if u.HasRole(role) {
		return false
	}
	u.Roles = append(u.Roles, role)
	return true
}

// RemoveRole drops role from the set. Returns false if not present.
func (u *User) RemoveRole(role Role) bool {
	for i, r := range u.Roles {
		if r == role {
			u.Roles = append(u.Roles[:i], u.Roles[i+1:]...)
			return true
		}
	}
	return false
}

// Address is stored as a JSON column on profile rows.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// ProfileClient holds client-specific extension data, one-to-one with User.
type ProfileClient struct {
	ID        uuid.UUID                   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID                   `gorm:"column:user_id;type:uuid;uniqueIndex;not null" json:"user_id"`
	Phone     string                      `gorm:"column:phone" json:"phone,omitempty"`
	Address   datatypes.JSONType[Address] `gorm:"column:address" json:"address"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

func (ProfileClient) TableName() string {
	return "profile_clients"
}

func (p *ProfileClient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProfilePro holds pro-specific extension data, one-to-one with User.
type ProfilePro struct {
	ID           uuid.UUID                   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID                   `gorm:"column:user_id;type:uuid;uniqueIndex;not null" json:"user_id"`
	BusinessName string                      `gorm:"column:business_name;not null" json:"business_name"`
	Website      string                      `gorm:"column:website" json:"website,omitempty"`
	Address      datatypes.JSONType[Address] `gorm:"column:address" json:"address"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

func (ProfilePro) TableName() string {
	return "profile_pros"
}

func (p *ProfilePro) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
