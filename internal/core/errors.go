// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrTokenInvalid = errors.New("token invalid")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

// AppError is a domain failure that maps directly onto an HTTP status
// and a message safe to return to the caller.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func BadRequestError(message string) *AppError {
	if message == "" {
		message = "bad request"
	}
	return NewAppError(ErrInvalidInput, message, http.StatusBadRequest)
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "not authorized"
	}
	return NewAppError(ErrUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return NewAppError(ErrForbidden, message, http.StatusForbidden)
}

func NotFoundError(message string) *AppError {
	if message == "" {
		message = "resource not found"
	}
	return NewAppError(ErrNotFound, message, http.StatusNotFound)
}

func ConflictError(message string) *AppError {
	if message == "" {
		message = "conflict"
	}
	return NewAppError(ErrDuplicateKey, message, http.StatusConflict)
}

func TokenInvalidError() *AppError {
	return NewAppError(
		ErrTokenInvalid,
		"Not authorized to access this resource.",
		http.StatusUnauthorized,
	)
}
