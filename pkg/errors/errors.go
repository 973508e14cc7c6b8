package errors

import (
	"errors"
	"fmt"
)

// Error codes. The HTTP status each one maps to is decided by pkg/http.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeBadRequest   = "BAD_REQUEST"
	CodeTimeout      = "TIMEOUT"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeInvalidInput = "INVALID_INPUT"
	CodeInvalidOTP   = "INVALID_OTP"
	CodeInvalidToken = "INVALID_TOKEN"
)

type AppError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found")
}

func NotFoundWithID(resource, id string) *AppError {
	e := NotFound(resource)
	e.Details = map[string]any{"resource": resource, "id": id}
	return e
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Details: details}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

// InvalidOTP is deliberately vague: an unknown email and a wrong code
// produce the same error.
func InvalidOTP() *AppError {
	return New(CodeInvalidOTP, "Invalid OTP")
}

func InvalidToken(err error) *AppError {
	return &AppError{Code: CodeInvalidToken, Message: "Invalid token", Err: err}
}

func Internal(message string, err error) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Err: err}
}

func Unavailable(service string) *AppError {
	return New(CodeUnavailable, service+" is temporarily unavailable")
}

// AsAppError returns the AppError in err's chain, or wraps err as an
// internal error.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
