package domain

import "time"

type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderOther       Gender = "other"
	GenderUndisclosed Gender = "prefer-not-to-say"
)

// Profile carries the display-only fields of a user. One per user,
// created lazily from the user record on first read.
type Profile struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Gender       Gender     `json:"gender,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	ProfileImage string     `json:"profile_image"`
	Bio          string     `json:"bio,omitempty"`
	Occupation   string     `json:"occupation,omitempty"`
	Street       string     `json:"street,omitempty"`
	City         string     `json:"city,omitempty"`
	State        string     `json:"state,omitempty"`
	Pincode      string     `json:"pincode,omitempty"`
	Country      string     `json:"country,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
