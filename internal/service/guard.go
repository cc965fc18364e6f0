package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/timz-app/timz-api/internal/errors"
	"github.com/timz-app/timz-api/internal/model"
	"github.com/timz-app/timz-api/internal/repository"
	"github.com/timz-app/timz-api/pkg/logger"
)

// Guard resolves bearer tokens into authenticated principals and enforces
// role membership. Authentication (Resolve) and authorization (RequireRoles)
// are separate stages so protected operations can compose them declaratively.
type Guard struct {
	tokens *TokenService
	users  *repository.UserRepository
}

func NewGuard(tokens *TokenService, users *repository.UserRepository) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Resolve verifies the token, loads the subject and checks the revocation
// counter. A token whose token_version no longer matches the stored user
// fails with ErrTokenRevoked; the version bump on logout kills every
// outstanding token at once.
func (g *Guard) Resolve(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := g.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrTokenMalformed, err)
	}

	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserUnknown
		}
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserUnknown
	}

	if claims.TokenVersion != user.TokenVersion {
		logger.GetLogger().Warn("Token version mismatch, credential revoked",
			zap.String("user_id", user.ID.String()),
			zap.Int("claim_version", claims.TokenVersion),
			zap.Int("current_version", user.TokenVersion),
		)
		return nil, apperrors.ErrTokenRevoked
	}

	return user, nil
}

// RequireRoles resolves the token and additionally fails with ErrForbidden
// unless the principal holds at least one of the allowed roles.
func (g *Guard) RequireRoles(ctx context.Context, tokenString string, allowed ...model.Role) (*model.User, error) {
	user, err := g.Resolve(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if !user.HasAnyRole(allowed...) {
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}
