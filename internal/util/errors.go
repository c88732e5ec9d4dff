// internal/util/errors.go
// Application errors and their HTTP status mapping.

package util

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string // e.g., "bad_input", "not_found", "internal"
	Message string
	Err     error
}

func (e *AppError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AppError) Unwrap() error { return e.Err }

// HTTPStatus maps the error code to a response status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case "bad_input":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusNotFound
	case "method_not_allowed":
		return http.StatusMethodNotAllowed
	case "too_large":
		return http.StatusRequestEntityTooLarge
	case "upstream":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func BadInput(msg string) *AppError         { return &AppError{Code: "bad_input", Message: msg} }
func NotFound(msg string) *AppError         { return &AppError{Code: "not_found", Message: msg} }
func MethodNotAllowed(msg string) *AppError { return &AppError{Code: "method_not_allowed", Message: msg} }
func TooLarge(msg string) *AppError         { return &AppError{Code: "too_large", Message: msg} }
func Internal(msg string) *AppError         { return &AppError{Code: "internal", Message: msg} }

// Upstream wraps a failure of an external dependency (APS, object storage).
func Upstream(msg string, err error) *AppError {
	return &AppError{Code: "upstream", Message: msg, Err: err}
}

// AsAppError returns err as an *AppError, treating anything else as internal.
func AsAppError(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return &AppError{Code: "internal", Message: "internal error", Err: err}
}
