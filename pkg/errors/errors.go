package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

const (
	ErrNotFound ErrorCode = iota + 1000
	ErrValidation
	ErrUnauthorized
	ErrCorruptState
	ErrStorage
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, id),
	}
}

func Validation(message string, err error) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Err:     err,
	}
}

func CorruptState(err error) *AppError {
	return &AppError{
		Code:    ErrCorruptState,
		Message: "persisted state is corrupt",
		Err:     err,
	}
}

func Storage(err error) *AppError {
	return &AppError{
		Code:    ErrStorage,
		Message: "storage failure",
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

// HasCode reports whether err or any error it wraps is an AppError with the
// given code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsNotFound reports whether err signals a missing record.
func IsNotFound(err error) bool {
	return HasCode(err, ErrNotFound)
}
