package users

import (
	"context"

	"homeserve/internal/domain"
)

// UserStore — only the methods the admin user service uses.
type UserStore interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) error
}
