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

// UserService covers user CRUD and role/profile provisioning.
type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByIDWithProfiles(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]model.User, int64, error) {
	users, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return users, total, nil
}

// Update patches identity fields. Only the user themselves or an admin may
// update an account.
func (s *UserService) Update(ctx context.Context, requester *model.User, id uuid.UUID, req *dto.UpdateUserRequest) (*model.User, error) {
	if requester.ID != id && !requester.HasRole(model.RoleAdmin) {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return user, nil
}

// Delete removes the user together with all profile rows. Admin only.
func (s *UserService) Delete(ctx context.Context, requester *model.User, id uuid.UUID) error {
	if !requester.HasRole(model.RoleAdmin) {
		return apperrors.ErrForbidden
	}

	return s.transactional(ctx, func(txRepo *repository.UserRepository) error {
		user, err := txRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.WrapError(apperrors.ErrStorage, err)
		}
		if err := txRepo.Delete(ctx, user); err != nil {
			return apperrors.WrapError(apperrors.ErrStorage, err)
		}
		return nil
	})
}

// AddRole grants a role and creates its profile row atomically. A pro role
// without a business name fails before anything is written.
func (s *UserService) AddRole(ctx context.Context, requester *model.User, userID uuid.UUID, req *dto.AddRoleRequest) (*model.User, error) {
	if requester.ID != userID && !requester.HasRole(model.RoleAdmin) {
		return nil, apperrors.ErrForbidden
	}
	if !model.ValidRole(req.Role) {
		return nil, apperrors.ErrInvalidInput
	}

	var user *model.User
	err := s.transactional(ctx, func(txRepo *repository.UserRepository) error {
		var err error
		user, err = txRepo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.WrapError(apperrors.ErrStorage, err)
		}
		if err := provisionRole(ctx, txRepo, user, req.Role, req); err != nil {
			return err
		}
		return txRepo.Save(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.GetLogger().Info("Role added",
		zap.String("user_id", userID.String()),
		zap.String("role", string(req.Role)),
	)
	return user, nil
}

// RemoveRole deletes the role's profile row and drops the role from the set,
// all inside one transaction. When the last role goes, the account goes with
// it: a user cannot exist roleless.
func (s *UserService) RemoveRole(ctx context.Context, requester *model.User, userID uuid.UUID, role model.Role) error {
	if requester.ID != userID && !requester.HasRole(model.RoleAdmin) {
		return apperrors.ErrForbidden
	}
	if !model.ValidRole(role) {
		return apperrors.ErrInvalidInput
	}

	var userDeleted bool
	err := s.transactional(ctx, func(txRepo *repository.UserRepository) error {
		user, err := txRepo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.WrapError(apperrors.ErrStorage, err)
		}
		if !user.HasRole(role) {
			return apperrors.ErrRoleNotPresent
		}

		switch role {
		case model.RoleClient:
			if err := txRepo.DeleteProfileClient(ctx, user.ID); err != nil {
				return apperrors.WrapError(apperrors.ErrStorage, err)
			}
		case model.RolePro:
			if err := txRepo.DeleteProfilePro(ctx, user.ID); err != nil {
				return apperrors.WrapError(apperrors.ErrStorage, err)
			}
		}

		user.RemoveRole(role)
		if len(user.Roles) == 0 {
			userDeleted = true
			if err := txRepo.Delete(ctx, user); err != nil {
				return apperrors.WrapError(apperrors.ErrStorage, err)
			}
			return nil
		}
		return txRepo.Save(ctx, user)
	})
	if err != nil {
		return err
	}

	logger.GetLogger().Info("Role removed",
		zap.String("user_id", userID.String()),
		zap.String("role", string(role)),
		zap.Bool("user_deleted", userDeleted),
	)
	return nil
}

// GetProfileClient returns the user's client profile row.
func (s *UserService) GetProfileClient(ctx context.Context, userID uuid.UUID) (*model.ProfileClient, error) {
	profile, err := s.users.GetProfileClient(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return profile, nil
}

// GetProfilePro returns the user's pro profile row.
func (s *UserService) GetProfilePro(ctx context.Context, userID uuid.UUID) (*model.ProfilePro, error) {
	profile, err := s.users.GetProfilePro(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return profile, nil
}

// UpdateProfileClient patches the client profile. Only the user themselves
// or an admin may change it.
func (s *UserService) UpdateProfileClient(ctx context.Context, requester *model.User, userID uuid.UUID, req *dto.UpdateProfileClientRequest) (*model.ProfileClient, error) {
	if requester.ID != userID && !requester.HasRole(model.RoleAdmin) {
		return nil, apperrors.ErrForbidden
	}

	profile, err := s.GetProfileClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Address != nil {
		profile.Address = datatypes.NewJSONType(*req.Address)
	}

	if err := s.users.SaveProfileClient(ctx, profile); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return profile, nil
}

// UpdateProfilePro patches the pro profile. The business name stays required
// for as long as the role is held.
func (s *UserService) UpdateProfilePro(ctx context.Context, requester *model.User, userID uuid.UUID, req *dto.UpdateProfileProRequest) (*model.ProfilePro, error) {
	if requester.ID != userID && !requester.HasRole(model.RoleAdmin) {
		return nil, apperrors.ErrForbidden
	}

	profile, err := s.GetProfilePro(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.BusinessName != nil {
		if *req.BusinessName == "" {
			return nil, apperrors.ErrIncompleteProfile
		}
		profile.BusinessName = *req.BusinessName
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}
	if req.Address != nil {
		profile.Address = datatypes.NewJSONType(*req.Address)
	}

	if err := s.users.SaveProfilePro(ctx, profile); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return profile, nil
}

// transactional runs fn in one unit of work; non-domain failures surface as
// a storage error after rollback.
func (s *UserService) transactional(ctx context.Context, fn func(txRepo *repository.UserRepository) error) error {
	err := s.users.Transaction(ctx, fn)
	if err != nil && !apperrors.IsDomainError(err) {
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return err
}

// provisionRole appends role to the user's set and creates the matching
// profile row. Callers run it inside a transaction and persist the user
// afterwards.
func provisionRole(ctx context.Context, txRepo *repository.UserRepository, user *model.User, role model.Role, req *dto.AddRoleRequest) error {
	if user.HasRole(role) {
		return apperrors.ErrRoleAlreadyHeld
	}

	switch role {
	case model.RoleClient:
		profile := &model.ProfileClient{UserID: user.ID, Phone: req.Phone}
		if req.Address != nil {
			profile.Address = datatypes.NewJSONType(*req.Address)
		}
		if err := txRepo.CreateProfileClient(ctx, profile); err != nil {
			return apperrors.WrapError(apperrors.ErrStorage, err)
		}
	case model.RolePro:
		if req.BusinessName == "" {
			return apperrors.ErrIncompleteProfile
		}
		profile := &model.ProfilePro{
			UserID:       user.ID,
			BusinessName: req.BusinessName,
			Website:      req.Website,
		}
		if req.Address != nil {
			profile.Address = datatypes.NewJSONType(*req.Address)
		}
		if err := txRepo.CreateProfilePro(ctx, profile); err != nil {
			return apperrors.WrapError(apperrors.ErrStorage, err)
		}
	case model.RoleAdmin:
		// Admin carries no profile row.
	}

	user.AddRole(role)
	return nil
}
