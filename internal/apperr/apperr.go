// Package apperr defines the domain error values returned by services.
// Every failure a caller can act on carries a stable code and the HTTP
// status the transport layer should use; only unexpected store failures
// go through Internal.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Details any    `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func New(status int, code, message string) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

func Validation(code, message string) *Error {
	return New(fiber.StatusBadRequest, code, message)
}

func Unauthorized(code, message string) *Error {
	return New(fiber.StatusUnauthorized, code, message)
}

func Forbidden(code, message string) *Error {
	return New(fiber.StatusForbidden, code, message)
}

func NotFound(code, message string) *Error {
	return New(fiber.StatusNotFound, code, message)
}

func Conflict(code, message string) *Error {
	return New(fiber.StatusConflict, code, message)
}

func Internal(message string) *Error {
	return New(fiber.StatusInternalServerError, "INTERNAL_ERROR", message)
}

func (e *Error) WithDetails(details any) *Error {
	c := *e
	c.Details = details
	return &c
}

// From extracts an *Error, wrapping anything else as internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err.Error())
}
