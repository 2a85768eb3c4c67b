package domain

import "time"

type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ServiceID int64     `json:"service_id"`
	BookingID int64     `json:"booking_id"`
	Rating    int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string    `json:"comment"`
	Images    []string  `json:"images,omitempty"`
	Helpful   int       `json:"helpful"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty"`
}
