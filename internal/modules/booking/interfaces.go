package booking

import (
	"context"

	"homeserve/internal/domain"
)

// BookingStore — only the methods the booking service uses.
type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListByProvider(ctx context.Context, providerID int64) ([]domain.Booking, error)
}

// ServiceReader resolves the booked service at creation time.
type ServiceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// UserReader resolves booking owners and assigned providers.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier records per-user notifications. Delivery is best effort: the
// booking operation never fails because a notification could not be
// written.
type Notifier interface {
	BookingAssigned(ctx context.Context, providerID int64, b *domain.Booking)
	BookingUpdated(ctx context.Context, recipientID int64, b *domain.Booking)
	BookingCancelled(ctx context.Context, recipientID int64, b *domain.Booking, reason string)
	PaymentReceived(ctx context.Context, recipientID int64, b *domain.Booking)
}
