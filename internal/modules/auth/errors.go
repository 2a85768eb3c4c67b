package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyVerified = errors.New("email already verified")
	ErrInvalidOTP           = errors.New("invalid otp")
	ErrExpiredOTP           = errors.New("otp expired")
	ErrNoPendingOTP         = errors.New("no pending otp")
	ErrAccountDisabled      = errors.New("account disabled")
	ErrNotVerified          = errors.New("email not verified")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidRole          = errors.New("invalid role")
)
