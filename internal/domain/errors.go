package domain

import "fmt"

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: 409}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Status: 401}
}

func ErrForbidden(msg string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: msg, Status: 403}
}

func ErrAccountLocked(msg string) *AppError {
	return &AppError{Code: "ACCOUNT_LOCKED", Message: msg, Status: 429}
}

// ErrWriteVerify marks the MySQL path where a write succeeded but the
// follow-up re-select found no row. Distinct from a raw driver error so
// callers can tell "write failed" from "write landed but verification failed".
func ErrWriteVerify(entity string, cause error) *AppError {
	return &AppError{Code: "WRITE_VERIFY_FAILED", Message: fmt.Sprintf("failed to read back %s after write", entity), Status: 500, Cause: cause}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
