package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/timz-app/timz-api/internal/model"
)

// UserRepository is the persistence boundary for users and their profile
// rows. Multi-step mutations run through Transaction so the role list and
// profile tables can never be observed out of sync.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a repository view bound to tx, for composing operations
// inside a single transaction.
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// Transaction runs fn inside one database transaction; any returned error
// rolls the whole unit of work back.
func (r *UserRepository) Transaction(ctx context.Context, fn func(txRepo *UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDWithProfiles loads the user together with any profile rows.
func (r *UserRepository) GetByIDWithProfiles(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("ProfileClient").
		Preload("ProfilePro").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := r.db.WithContext(ctx).Model(&model.User{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Limit(limit).Offset(offset).Order("created_at").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes the user and any profile rows that still reference it.
func (r *UserRepository) Delete(ctx context.Context, user *model.User) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", user.ID).Delete(&model.ProfileClient{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", user.ID).Delete(&model.ProfilePro{}).Error; err != nil {
		return err
	}
	return db.Delete(user).Error
}

// IncrementTokenVersion bumps the revocation counter with a single atomic
// UPDATE, invalidating every previously issued token for the user.
func (r *UserRepository) IncrementTokenVersion(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) CreateProfileClient(ctx context.Context, profile *model.ProfileClient) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *UserRepository) CreateProfilePro(ctx context.Context, profile *model.ProfilePro) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *UserRepository) GetProfileClient(ctx context.Context, userID uuid.UUID) (*model.ProfileClient, error) {
	var profile model.ProfileClient
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepository) GetProfilePro(ctx context.Context, userID uuid.UUID) (*model.ProfilePro, error) {
	var profile model.ProfilePro
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepository) SaveProfileClient(ctx context.Context, profile *model.ProfileClient) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *UserRepository) SaveProfilePro(ctx context.Context, profile *model.ProfilePro) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *UserRepository) DeleteProfileClient(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.ProfileClient{}).Error
}

func (r *UserRepository) DeleteProfilePro(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.ProfilePro{}).Error
}
