package codec

import (
	"errors"
	"fmt"
)

// Sentinel reasons carried by ValidationError. Match them with errors.Is.
var (
	ErrEmptyInput          = errors.New("empty input")
	ErrMalformedHex        = errors.New("malformed hexadecimal")
	ErrMalformedBase64     = errors.New("malformed base64")
	ErrInvalidLength       = errors.New("invalid length")
	ErrBlockAlignment      = errors.New("not aligned to the cipher block size")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// ValidationError describes why a user-supplied field was rejected.
type ValidationError struct {
	Field  string
	Reason error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Reason)
}

// Unwrap exposes the sentinel reason.
func (e *ValidationError) Unwrap() error {
	return e.Reason
}

func newValidationError(field string, reason error, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: reason,
		Detail: fmt.Sprintf(format, args...),
	}
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
