package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that carry their own HTTP status and problem code.
// Authorization failures (auth.AuthorizationError) implement it too.
type HTTPError interface {
	error
	StatusCode() int
	ErrorCode() string
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (movie, actor, cast)
	ResourceID   int64  // ID of the existing/conflicting resource
}

// NewConflictError builds a ConflictError for an existing resource
func NewConflictError(resourceType string, resourceID int64, format string, args ...interface{}) *ConflictError {
	return &ConflictError{
		Message:      fmt.Sprintf(format, args...),
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// ErrorCode implements the HTTPError interface
func (e *ConflictError) ErrorCode() string {
	return "conflict"
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
