package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/timz-app/timz-api/internal/dto"
	"github.com/timz-app/timz-api/internal/model"
)

// CatalogRepository persists services, service groups and categories.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) CreateService(ctx context.Context, svc *model.Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *CatalogRepository) SaveService(ctx context.Context, svc *model.Service) error {
	return r.db.WithContext(ctx).Save(svc).Error
}

// GetServiceForPro loads a service only if it belongs to proID.
func (r *CatalogRepository) GetServiceForPro(ctx context.Context, id, proID uuid.UUID) (*model.Service, error) {
	var svc model.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND pro_id = ?", id, proID).
		First(&svc).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *CatalogRepository) ListServicesByPro(ctx context.Context, proID uuid.UUID) ([]model.Service, error) {
	var services []model.Service
	err := r.db.WithContext(ctx).
		Where("pro_id = ?", proID).
		Order("created_at DESC").
		Find(&services).Error
	return services, err
}

// ListPublicServices returns active, public services matching the filter.
func (r *CatalogRepository) ListPublicServices(ctx context.Context, filter dto.PublicServiceFilter) ([]model.Service, error) {
	query := r.db.WithContext(ctx).
		Where("is_active = ? AND is_public = ?", true, true)

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.ProID != nil {
		query = query.Where("pro_id = ?", *filter.ProID)
	}
	if filter.ServiceGroupID != nil {
		query = query.Where("service_group_id = ?", *filter.ServiceGroupID)
	}

	var services []model.Service
	err := query.Order("created_at DESC").Find(&services).Error
	return services, err
}

func (r *CatalogRepository) DeleteService(ctx context.Context, svc *model.Service) error {
	return r.db.WithContext(ctx).Delete(svc).Error
}

func (r *CatalogRepository) CreateServiceGroup(ctx context.Context, group *model.ServiceGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *CatalogRepository) ListServiceGroupsByPro(ctx context.Context, proID uuid.UUID) ([]model.ServiceGroup, error) {
	var groups []model.ServiceGroup
	err := r.db.WithContext(ctx).
		Where("pro_id = ?", proID).
		Order("position").
		Find(&groups).Error
	return groups, err
}

func (r *CatalogRepository) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}
