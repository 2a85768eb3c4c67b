package booking

import "homeserve/internal/domain"

type ClientDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CreateBookingRequest struct {
	ServiceID     int64          `json:"service" binding:"required"`
	ScheduledDate string         `json:"scheduledDate" binding:"required"`
	ScheduledTime string         `json:"scheduledTime" binding:"required"`
	Address       domain.Address `json:"address" binding:"required"`
	BookingFor    string         `json:"bookingFor"`
	ClientDetails *ClientDetails `json:"clientDetails,omitempty"`
	PaymentMethod string         `json:"paymentMethod"`
	Notes         string         `json:"notes"`
}

// UpdateBookingRequest carries only the fields the caller wants to
// change; permissions per field are enforced in the service.
type UpdateBookingRequest struct {
	Status            *string `json:"status,omitempty"`
	PaymentStatus     *string `json:"paymentStatus,omitempty"`
	ServiceProviderID *int64  `json:"serviceProvider,omitempty"`
	ScheduledDate     *string `json:"scheduledDate,omitempty"`
	ScheduledTime     *string `json:"scheduledTime,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	Reason            *string `json:"reason,omitempty"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}
