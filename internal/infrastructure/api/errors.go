package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

// Error is a non-2xx response from the backend.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the server's error text, untouched: a plain-text body, a
	// JSON string body, or the "message"/"error" field of a JSON object body.
	Message string
}

func newError(method, path string, status int, body []byte) *Error {
	return &Error{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Message:    extractMessage(body),
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s failed with status %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// RemoteMessage implements shared.RemoteError.
func (e *Error) RemoteMessage() string {
	return e.Message
}

var _ shared.RemoteError = (*Error)(nil)

// Is maps authentication and lookup failures onto the shared domain errors.
func (e *Error) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Is(shared.ErrUnauthorized, target)
	case http.StatusNotFound:
		return errors.Is(shared.ErrNotFound, target)
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func extractMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	switch body[0] {
	case '"':
		var s string
		if err := json.Unmarshal(body, &s); err == nil {
			return strings.TrimSpace(s)
		}
	case '{':
		var obj map[string]any
		if err := json.Unmarshal(body, &obj); err == nil {
			for _, key := range []string{"message", "error", "detail"} {
				if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
					return strings.TrimSpace(s)
				}
			}
		}
	}
	return string(body)
}
