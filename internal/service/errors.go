package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrDuplicate          = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// validationError wraps a model validation message so callers can match
// ErrValidation while still reading the original message.
func validationError(err error) error {
	return fmt.Errorf("%w: %s", ErrValidation, err.Error())
}
