package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email" validate:"required,email"`
	PasswordHash string     `json:"-"`
	Phone        string     `json:"phone,omitempty"`
	Role         UserRole   `json:"role"`
	IsActive     bool       `json:"is_active"`
	IsVerified   bool       `json:"is_verified"`
	OTPHash      string     `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Actor identifies the authenticated caller of an operation.
// Built from token claims by the handlers, never from request bodies.
type Actor struct {
	UserID int64
	Role   UserRole
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
