package auth

import (
	"context"
	"time"

	"homeserve/internal/domain"
)

// UserStore — only the methods the auth service uses.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	SetOTP(ctx context.Context, userID int64, otpHash string, expiresAt *time.Time) error
	MarkVerified(ctx context.Context, userID int64) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// Mailer delivers verification codes.
type Mailer interface {
	SendOTP(ctx context.Context, email, name, code string) error
}
