package dto

import (
	"github.com/google/uuid"

	"github.com/timz-app/timz-api/internal/model"
)

// SignupRequest creates a user with an initial role set. Role-specific
// profile fields ride along and are consumed by the provisioner.
type SignupRequest struct {
	Email        string         `json:"email" binding:"required,email"`
	Password     string         `json:"password" binding:"required,min=8"`
	FullName     string         `json:"full_name" binding:"required"`
	Phone        string         `json:"phone,omitempty"`
	ProfileImage string         `json:"profile_image,omitempty"`
	Roles        []model.Role   `json:"roles" binding:"required,min=1"`
	Address      *model.Address `json:"address,omitempty"`
	BusinessName string         `json:"business_name,omitempty"`
	Website      string         `json:"website,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by signup and login.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	UserID      uuid.UUID    `json:"user_id"`
	Roles       []model.Role `json:"roles"`
}
