package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Storage errors
	ErrPersistence = errors.New("persistence failure")
)

// Catalog errors
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrSectionNotFound    = errors.New("section not found")
)

// Enrollment errors
var (
	ErrSectionFull          = errors.New("section is full")
	ErrScheduleConflict     = errors.New("schedule conflicts with an enrolled section")
	ErrRequestNotFound      = errors.New("enrollment request not found")
	ErrRequestNotPending    = errors.New("enrollment request has already been reviewed")
	ErrPendingRequestExists = errors.New("a pending request already exists for this section")
	ErrAlreadyEnrolled      = errors.New("student is already enrolled in this section")
	ErrPrerequisitesNotMet  = errors.New("prerequisites not met")
)

// ConflictKind names the resource a scheduling conflict was found on
type ConflictKind string

const (
	ConflictRoom       ConflictKind = "ROOM"
	ConflictInstructor ConflictKind = "INSTRUCTOR"
	ConflictDuplicate  ConflictKind = "DUPLICATE"
)

// ConflictError reports a section that collides with an existing one.
// It unwraps to ErrConflict.
type ConflictError struct {
	Kind   ConflictKind
	Reason string
}

// Error implements error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Kind, e.Reason)
}

// Unwrap implements errors.Unwrap interface
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewSchedulingConflict creates a ConflictError of the given kind
func NewSchedulingConflict(kind ConflictKind, reason string) *ConflictError {
	return &ConflictError{Kind: kind, Reason: reason}
}

// AsConflict extracts a ConflictError from err
func AsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a validation error carrying a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewPersistenceError wraps an unexpected storage failure
func NewPersistenceError(op string, err error) error {
	return &CustomError{
		Err:     ErrPersistence,
		Message: fmt.Sprintf("%s: %v", op, err),
		Details: map[string]interface{}{"operation": op},
	}
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
