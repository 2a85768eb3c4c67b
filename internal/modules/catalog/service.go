package catalog

import (
	"context"
	"errors"
	"strconv"

	"homeserve/internal/domain"
	"homeserve/internal/repository"

	"gorm.io/gorm"
)

// Service implements the public catalog reads and the admin-only
// catalog writes. Rating and review count on a service are owned by the
// review aggregator and are never writable from here.
type Service struct {
	categories CategoryStore
	services   ServiceStore
}

func NewService(categories CategoryStore, services ServiceStore) *Service {
	return &Service{categories: categories, services: services}
}

func (s *Service) ListCategories(ctx context.Context, includeInactive bool) ([]domain.Category, error) {
	return s.categories.List(ctx, !includeInactive)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return cat, nil
}

func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	cat := &domain.Category{
		Name:         req.Name,
		Description:  req.Description,
		Icon:         req.Icon,
		Image:        req.Image,
		Slug:         domain.Slugify(req.Name),
		IsActive:     true,
		DisplayOrder: req.DisplayOrder,
	}

	if err := s.categories.Create(ctx, cat); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return cat, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, req UpdateCategoryRequest) (*domain.Category, error) {
	cat, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cat.Name = *req.Name
		cat.Slug = domain.Slugify(*req.Name)
	}
	if req.Description != nil {
		cat.Description = *req.Description
	}
	if req.Icon != nil {
		cat.Icon = *req.Icon
	}
	if req.Image != nil {
		cat.Image = *req.Image
	}
	if req.DisplayOrder != nil {
		cat.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}

	if err := s.categories.Update(ctx, cat); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return cat, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	err := s.categories.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCategoryNotFound
	}
	return err
}

// ListServices resolves the category query key (numeric id, slug or
// name) before filtering. An unknown category yields an empty list
// rather than an error, matching the public browse behaviour.
func (s *Service) ListServices(ctx context.Context, q ListServicesQuery, includeInactive bool) ([]domain.Service, error) {
	filter := repository.ServiceFilter{
		Featured:   q.Featured,
		Search:     q.Search,
		Sort:       q.Sort,
		ActiveOnly: !includeInactive,
	}

	if q.Category != "" {
		cat, err := s.resolveCategory(ctx, q.Category)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []domain.Service{}, nil
			}
			return nil, err
		}
		filter.CategoryID = &cat.ID
	}

	if q.MinPrice != "" {
		if v, err := strconv.ParseFloat(q.MinPrice, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if q.MaxPrice != "" {
		if v, err := strconv.ParseFloat(q.MaxPrice, 64); err == nil {
			filter.MaxPrice = &v
		}
	}

	return s.services.List(ctx, filter)
}

func (s *Service) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	if cat, err := s.categories.GetByID(ctx, svc.CategoryID); err == nil {
		svc.Category = cat
	}
	return svc, nil
}

func (s *Service) CreateService(ctx context.Context, req CreateServiceRequest) (*domain.Service, error) {
	if _, err := s.GetCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if req.DiscountPrice != nil && *req.DiscountPrice >= req.Price {
		return nil, ErrInvalidDiscount
	}

	svc := &domain.Service{
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Duration:      req.Duration,
		Image:         req.Image,
		Images:        req.Images,
		Tags:          req.Tags,
		IsActive:      true,
		IsFeatured:    req.IsFeatured,
	}

	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) UpdateService(ctx context.Context, id int64, req UpdateServiceRequest) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.GetCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		svc.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DiscountPrice != nil {
		if *req.DiscountPrice <= 0 {
			svc.DiscountPrice = nil
		} else {
			svc.DiscountPrice = req.DiscountPrice
		}
	}
	if req.Duration != nil {
		svc.Duration = *req.Duration
	}
	if req.Image != nil {
		svc.Image = *req.Image
	}
	if req.Images != nil {
		svc.Images = req.Images
	}
	if req.Tags != nil {
		svc.Tags = req.Tags
	}
	if req.IsFeatured != nil {
		svc.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if svc.DiscountPrice != nil && *svc.DiscountPrice >= svc.Price {
		return nil, ErrInvalidDiscount
	}

	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) DeleteService(ctx context.Context, id int64) error {
	err := s.services.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrServiceNotFound
	}
	return err
}

func (s *Service) resolveCategory(ctx context.Context, key string) (*domain.Category, error) {
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		return s.categories.GetByID(ctx, id)
	}
	return s.categories.GetBySlugOrName(ctx, key)
}
