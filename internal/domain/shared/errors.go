package shared

import (
	"errors"
	"strings"
)

// Error codes shared by the console layers.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidFilter    = "INVALID_FILTER"
	CodeInvalidAction    = "INVALID_ACTION"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeRequestFailed    = "REQUEST_FAILED"
	CodeInvalidInput     = "INVALID_INPUT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped sentinels compare equal.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrUnauthorized  = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrInvalidAction = NewDomainError(CodeInvalidAction, "Unknown action")
	ErrInvalidFilter = NewDomainError(CodeInvalidFilter, "Unknown filter")
	ErrRequestFailed = NewDomainError(CodeRequestFailed, "Request failed")
)

// FieldError is a single field-local validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every field that failed client-side validation.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, &DomainError{Code: CodeValidationFailed}) succeed.
func (e *ValidationError) Is(target error) bool {
	var de *DomainError
	return errors.As(target, &de) && de.Code == CodeValidationFailed
}

// Message returns the message for field, or "" if the field is valid.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// NewValidationError builds a ValidationError, or returns nil when there are no fields.
func NewValidationError(fields ...FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// RemoteError is implemented by errors that carry a message written by the
// backend, which is shown to the user verbatim.
type RemoteError interface {
	error
	RemoteMessage() string
}

// RemoteMessage returns the backend's message carried by err, or fallback
// when there is none.
func RemoteMessage(err error, fallback string) string {
	var re RemoteError
	if errors.As(err, &re) {
		if msg := strings.TrimSpace(re.RemoteMessage()); msg != "" {
			return msg
		}
	}
	return fallback
}
