package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/timz-app/timz-api/internal/dto"
	apperrors "github.com/timz-app/timz-api/internal/errors"
	"github.com/timz-app/timz-api/internal/model"
	"github.com/timz-app/timz-api/internal/repository"
	"github.com/timz-app/timz-api/pkg/logger"
)

// AuthService implements signup, login and logout.
type AuthService struct {
	users  *repository.UserRepository
	hasher *PasswordHasher
	tokens *TokenService
}

func NewAuthService(users *repository.UserRepository, hasher *PasswordHasher, tokens *TokenService) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Signup creates a user with its initial role set and the matching profile
// rows in one transaction, then issues a token.
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.TokenResponse, error) {
	// A user cannot exist roleless.
	if len(req.Roles) == 0 {
		return nil, apperrors.ErrInvalidInput
	}
	for _, role := range req.Roles {
		if !model.ValidRole(role) {
			return nil, apperrors.ErrInvalidInput
		}
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		ProfileImage: req.ProfileImage,
		Roles:        datatypes.JSONSlice[model.Role]{},
		IsActive:     true,
	}

	err = s.users.Transaction(ctx, func(txRepo *repository.UserRepository) error {
		if err := txRepo.Create(ctx, user); err != nil {
			return apperrors.WrapError(apperrors.ErrStorage, err)
		}
		for _, role := range req.Roles {
			if err := provisionRole(ctx, txRepo, user, role, &dto.AddRoleRequest{
				Role:         role,
				BusinessName: req.BusinessName,
				Website:      req.Website,
				Phone:        req.Phone,
				Address:      req.Address,
			}); err != nil {
				return err
			}
		}
		return txRepo.Save(ctx, user)
	})
	if err != nil {
		if apperrors.IsDomainError(err) {
			return nil, err
		}
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}

	token, err := s.tokens.Issue(user.ID, user.Roles, user.TokenVersion)
	if err != nil {
		return nil, err
	}

	logger.LogAuth(user.ID.String(), "signup", true, zap.String("email", user.Email))

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
		Roles:       user.Roles,
	}, nil
}

// Login authenticates by email and password and issues a token carrying the
// user's current roles and token_version.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.LogAuth("", "login", false, zap.String("email", email))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}

	// A wrong password and an inactive account answer the same way.
	if !user.IsActive || !s.hasher.Verify(password, user.PasswordHash) {
		logger.LogAuth(user.ID.String(), "login", false, zap.String("email", email))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Roles, user.TokenVersion)
	if err != nil {
		return nil, err
	}

	logger.LogAuth(user.ID.String(), "login", true, zap.String("email", email))

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
		Roles:       user.Roles,
	}, nil
}

// Logout bumps the user's token_version, revoking every outstanding token
// in one atomic increment.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.IncrementTokenVersion(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	logger.LogAuth(userID.String(), "logout", true)
	return nil
}
