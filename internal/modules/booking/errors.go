package booking

import "errors"

var (
	ErrNotFound           = errors.New("booking not found")
	ErrForbidden          = errors.New("not allowed for this booking")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrProviderNotFound   = errors.New("service provider not found")
	ErrSlotTaken          = errors.New("provider already booked for this slot")
	ErrTerminalState      = errors.New("booking already completed or cancelled")
	ErrInvalidDate        = errors.New("invalid scheduled date")
	ErrInvalidTime        = errors.New("invalid scheduled time")
	ErrInvalidAddress     = errors.New("invalid address")
	ErrInvalidClient      = errors.New("invalid client details")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPayment     = errors.New("invalid payment details")
)
