package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError reports a failed request: either the request never produced
// a response (Err is set, StatusCode is 0) or the server answered non-2xx.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	prefix := e.Method + " " + e.Path
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	}
	status := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, status, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", prefix, status, e.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewStatusError creates a TransportError for a non-2xx response.
func NewStatusError(method, path string, statusCode int, message string) *TransportError {
	return &TransportError{Method: method, Path: path, StatusCode: statusCode, Message: message}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.StatusCode
	}
	return 0
}

// IsNotFound reports a 404 response.
func IsNotFound(err error) bool { return StatusCode(err) == http.StatusNotFound }

// IsForbidden reports a 403 response.
func IsForbidden(err error) bool { return StatusCode(err) == http.StatusForbidden }
