package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/timz-app/timz-api/internal/dto"
	apperrors "github.com/timz-app/timz-api/internal/errors"
	"github.com/timz-app/timz-api/internal/model"
	"github.com/timz-app/timz-api/internal/repository"
)

// CatalogService manages services, service groups and categories.
type CatalogService struct {
	catalog *repository.CatalogRepository
}

func NewCatalogService(catalog *repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// CreateService publishes a service for the pro. Fixed and starting_from
// pricing require a base price and a duration.
func (s *CatalogService) CreateService(ctx context.Context, pro *model.User, req *dto.CreateServiceRequest) (*model.Service, error) {
	pricing := req.PricingType
	if pricing == "" {
		pricing = model.PricingFixed
	}
	if !model.ValidPricingType(pricing) {
		return nil, apperrors.ErrInvalidInput
	}
	if pricing.RequiresPrice() && (req.BasePrice == nil || req.Duration == nil) {
		return nil, apperrors.ErrInvalidInput
	}

	svc := &model.Service{
		ProID:          pro.ID,
		Title:          req.Title,
		Description:    req.Description,
		BasePrice:      req.BasePrice,
		PricingType:    pricing,
		Duration:       req.Duration,
		CategoryID:     req.CategoryID,
		ServiceGroupID: req.ServiceGroupID,
		OptionsSchema:  req.OptionsSchema,
		IsPublic:       true,
		IsActive:       true,
	}
	if req.IsPublic != nil {
		svc.IsPublic = *req.IsPublic
	}

	if err := s.catalog.CreateService(ctx, svc); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return svc, nil
}

// GetMyService loads a single service owned by the pro. Services belonging
// to anyone else answer not-found rather than forbidden.
func (s *CatalogService) GetMyService(ctx context.Context, pro *model.User, id uuid.UUID) (*model.Service, error) {
	svc, err := s.catalog.GetServiceForPro(ctx, id, pro.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrServiceNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return svc, nil
}

func (s *CatalogService) ListMyServices(ctx context.Context, pro *model.User) ([]model.Service, error) {
	services, err := s.catalog.ListServicesByPro(ctx, pro.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return services, nil
}

func (s *CatalogService) ListPublicServices(ctx context.Context, filter dto.PublicServiceFilter) ([]model.Service, error) {
	services, err := s.catalog.ListPublicServices(ctx, filter)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return services, nil
}

// UpdateService patches a service owned by the pro.
func (s *CatalogService) UpdateService(ctx context.Context, pro *model.User, id uuid.UUID, req *dto.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.catalog.GetServiceForPro(ctx, id, pro.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrServiceNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}

	if req.Title != nil {
		svc.Title = *req.Title
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.BasePrice != nil {
		svc.BasePrice = req.BasePrice
	}
	if req.PricingType != nil {
		if !model.ValidPricingType(*req.PricingType) {
			return nil, apperrors.ErrInvalidInput
		}
		svc.PricingType = *req.PricingType
	}
	if req.Duration != nil {
		svc.Duration = req.Duration
	}
	if req.ServiceGroupID != nil {
		svc.ServiceGroupID = req.ServiceGroupID
	}
	if req.IsPublic != nil {
		svc.IsPublic = *req.IsPublic
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if svc.PricingType.RequiresPrice() && (svc.BasePrice == nil || svc.Duration == nil) {
		return nil, apperrors.ErrInvalidInput
	}

	if err := s.catalog.SaveService(ctx, svc); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return svc, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, pro *model.User, id uuid.UUID) error {
	svc, err := s.catalog.GetServiceForPro(ctx, id, pro.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrServiceNotFound
		}
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	if err := s.catalog.DeleteService(ctx, svc); err != nil {
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return nil
}

func (s *CatalogService) CreateServiceGroup(ctx context.Context, pro *model.User, req *dto.CreateServiceGroupRequest) (*model.ServiceGroup, error) {
	group := &model.ServiceGroup{
		ProID:    pro.ID,
		Name:     req.Name,
		Position: req.Position,
	}
	if err := s.catalog.CreateServiceGroup(ctx, group); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return group, nil
}

func (s *CatalogService) ListMyServiceGroups(ctx context.Context, pro *model.User) ([]model.ServiceGroup, error) {
	groups, err := s.catalog.ListServiceGroupsByPro(ctx, pro.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return groups, nil
}

// CreateCategory adds an admin-curated category; names are unique.
func (s *CatalogService) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*model.Category, error) {
	if _, err := s.catalog.GetCategoryByName(ctx, req.Name); err == nil {
		return nil, apperrors.ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}

	category := &model.Category{Name: req.Name}
	if err := s.catalog.CreateCategory(ctx, category); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return categories, nil
}
