package model

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrAccountNotFound     = errors.New("account not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrEmailTaken          = errors.New("User already exists")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrInvalidSignature    = errors.New("Invalid signature")
	ErrPaymentNotConfirmed = errors.New("Payment not confirmed")
)

// ValidationError carries a message meant for the caller. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Invalid(message string) error {
	return &ValidationError{Message: message}
}
