package notification

import (
	"context"
	"errors"
	"fmt"
	"log"

	"homeserve/internal/domain"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("notification not found")

// Service writes and reads the per-user notification log. Writes from
// other modules are best effort: a failed insert is logged, never
// propagated, so a booking operation cannot fail on its side effects.
type Service struct {
	store NotificationStore
}

func NewService(store NotificationStore) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return s.store.ListByRecipient(ctx, userID)
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.store.CountUnread(ctx, userID)
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	err := s.store.MarkAsRead(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.store.MarkAllAsRead(ctx, userID)
}

func (s *Service) BookingAssigned(ctx context.Context, providerID int64, b *domain.Booking) {
	s.record(ctx, &domain.Notification{
		RecipientID:      providerID,
		Type:             domain.NotifyBookingAssigned,
		Title:            "New booking assigned",
		Message:          fmt.Sprintf("You have been assigned booking #%d for %s at %s", b.ID, b.ScheduledDate.Format("2006-01-02"), b.ScheduledTime),
		RelatedBookingID: &b.ID,
		RelatedServiceID: &b.ServiceID,
	})
}

func (s *Service) BookingUpdated(ctx context.Context, recipientID int64, b *domain.Booking) {
	s.record(ctx, &domain.Notification{
		RecipientID:      recipientID,
		Type:             domain.NotifyBookingUpdated,
		Title:            "Booking updated",
		Message:          fmt.Sprintf("Booking #%d is now %s", b.ID, b.Status),
		RelatedBookingID: &b.ID,
		RelatedServiceID: &b.ServiceID,
	})
}

func (s *Service) BookingCancelled(ctx context.Context, recipientID int64, b *domain.Booking, reason string) {
	s.record(ctx, &domain.Notification{
		RecipientID:      recipientID,
		Type:             domain.NotifyBookingCancelled,
		Title:            "Booking cancelled",
		Message:          fmt.Sprintf("Booking #%d was cancelled: %s", b.ID, reason),
		RelatedBookingID: &b.ID,
		RelatedServiceID: &b.ServiceID,
	})
}

func (s *Service) PaymentReceived(ctx context.Context, recipientID int64, b *domain.Booking) {
	s.record(ctx, &domain.Notification{
		RecipientID:      recipientID,
		Type:             domain.NotifyPaymentReceived,
		Title:            "Payment received",
		Message:          fmt.Sprintf("Payment of %.2f received for booking #%d", b.TotalAmount, b.ID),
		RelatedBookingID: &b.ID,
		RelatedServiceID: &b.ServiceID,
	})
}

func (s *Service) ReviewReceived(ctx context.Context, recipientID int64, serviceID int64, rating int) {
	s.record(ctx, &domain.Notification{
		RecipientID:      recipientID,
		Type:             domain.NotifyReviewReceived,
		Title:            "New review",
		Message:          fmt.Sprintf("A customer left a %d-star review", rating),
		RelatedServiceID: &serviceID,
	})
}

func (s *Service) record(ctx context.Context, n *domain.Notification) {
	if err := s.store.Create(ctx, n); err != nil {
		log.Printf("notification_write_failed recipient=%d type=%s error=%v", n.RecipientID, n.Type, err)
	}
}
