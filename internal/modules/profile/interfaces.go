package profile

import (
	"context"

	"homeserve/internal/domain"
)

type ProfileStore interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
