package catalog

import (
	"context"

	"homeserve/internal/domain"
	"homeserve/internal/repository"
)

// CategoryStore — only the methods the catalog service uses.
type CategoryStore interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetBySlugOrName(ctx context.Context, key string) (*domain.Category, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id int64) error
}

type ServiceStore interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context, f repository.ServiceFilter) ([]domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, id int64) error
}
