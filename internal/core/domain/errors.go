package domain

import (
	"errors"
	"net/http"
)

// AppError carries the HTTP status the error boundary should answer with.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func NewAppError(status int, message string, err error) *AppError {
	return &AppError{Status: status, Message: message, Err: err}
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.Status
}

var ErrTaskNotFound = NewAppError(http.StatusNotFound, "Task not found", nil)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrTaskNotFound)
}
