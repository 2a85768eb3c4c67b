package domain

import "time"

type NotificationType string

const (
	NotifyBookingAssigned  NotificationType = "booking_assigned"
	NotifyBookingUpdated   NotificationType = "booking_updated"
	NotifyBookingCancelled NotificationType = "booking_cancelled"
	NotifyPaymentReceived  NotificationType = "payment_received"
	NotifyReviewReceived   NotificationType = "review_received"
)

// Notification is an append-only per-user record; other modules write
// them as best-effort side effects and never fail an operation on them.
type Notification struct {
	ID               int64            `json:"id"`
	RecipientID      int64            `json:"recipient_id"`
	Type             NotificationType `json:"type"`
	Title            string           `json:"title"`
	Message          string           `json:"message"`
	RelatedBookingID *int64           `json:"related_booking_id,omitempty"`
	RelatedServiceID *int64           `json:"related_service_id,omitempty"`
	Read             bool             `json:"read"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
