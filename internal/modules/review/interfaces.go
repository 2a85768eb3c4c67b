package review

import (
	"context"

	"homeserve/internal/domain"
)

// ReviewStore mutations carry the rating recompute inside the same
// storage transaction, so callers never see a review without its
// aggregate effect.
type ReviewStore interface {
	Create(ctx context.Context, rv *domain.Review) error
	Update(ctx context.Context, rv *domain.Review) error
	Delete(ctx context.Context, id, serviceID int64) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ListByService(ctx context.Context, serviceID int64) ([]domain.Review, error)
}

// BookingReader gates reviews on a completed, owned booking.
type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// ProviderNotifier tells the provider who served the booking about a
// fresh review. Best effort.
type ProviderNotifier interface {
	ReviewReceived(ctx context.Context, recipientID int64, serviceID int64, rating int)
}
