package domain

import (
	"regexp"
	"time"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in-progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// Active reports whether the booking still occupies its provider slot.
// The no-double-booking index only covers active statuses.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingConfirmed || s == BookingInProgress
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded, PaymentFailed:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayCard   PaymentMethod = "card"
	PayUPI    PaymentMethod = "upi"
	PayWallet PaymentMethod = "wallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCash, PayCard, PayUPI, PayWallet:
		return true
	}
	return false
}

type BookingFor string

const (
	ForSelf  BookingFor = "self"
	ForOther BookingFor = "other"
)

type Address struct {
	Street   string `json:"street" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	Pincode  string `json:"pincode" validate:"required"`
	Landmark string `json:"landmark,omitempty"`
}

var (
	timeRe    = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)
	phoneRe   = regexp.MustCompile(`^[0-9]{10}$`)
)

// ValidTime reports whether s is a 24h clock time in HH:MM form.
func ValidTime(s string) bool { return timeRe.MatchString(s) }

// ValidPincode reports whether s is a 6-digit postal code.
func ValidPincode(s string) bool { return pincodeRe.MatchString(s) }

// ValidPhone reports whether s is a 10-digit phone number.
func ValidPhone(s string) bool { return phoneRe.MatchString(s) }

type Booking struct {
	ID                int64         `json:"id"`
	UserID            int64         `json:"user_id"`
	ServiceID         int64         `json:"service_id"`
	ServiceProviderID *int64        `json:"service_provider_id,omitempty"`
	ScheduledDate     time.Time     `json:"scheduled_date"`
	ScheduledTime     string        `json:"scheduled_time"`
	Address           Address       `json:"address"`
	BookingFor        BookingFor    `json:"booking_for"`
	ClientName        string        `json:"client_name"`
	ClientEmail       string        `json:"client_email"`
	ClientPhone       string        `json:"client_phone"`
	Status            BookingStatus `json:"status"`
	TotalAmount       float64       `json:"total_amount"`
	PaymentStatus     PaymentStatus `json:"payment_status"`
	PaymentMethod     PaymentMethod `json:"payment_method"`
	Notes             string        `json:"notes,omitempty"`
	CancellationReason string       `json:"cancellation_reason,omitempty"`
	CompletedAt       *time.Time    `json:"completed_at,omitempty"`
	CancelledAt       *time.Time    `json:"cancelled_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`

	User            *User    `json:"user,omitempty"`
	Service         *Service `json:"service,omitempty"`
	ServiceProvider *User    `json:"service_provider,omitempty"`
}
