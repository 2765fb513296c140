package domain

import (
	"errors"
	"fmt"
)

// Identity and resource errors
var (
	ErrEmailExists       = errors.New("an account with this email already exists")
	ErrMemberNotFound    = errors.New("member not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrDeedNotFound      = errors.New("deed not found")
	ErrLoginThrottled    = errors.New("too many login attempts")
)

// ValidationError carries a user-correctable message about malformed or
// missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
