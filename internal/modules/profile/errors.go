package profile

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidField = errors.New("invalid profile field")
)
