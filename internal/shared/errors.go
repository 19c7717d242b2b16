package shared

import (
	"fmt"
	"strings"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Request errors
	ErrTransport          = fmt.Errorf("transport error")
	ErrServer             = fmt.Errorf("server error")
	ErrDecode             = fmt.Errorf("failed to decode response")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrForbidden          = fmt.Errorf("forbidden")

	// Domain errors
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrItemNotFound     = fmt.Errorf("item not found")
	ErrNotEditing       = fmt.Errorf("item is not in edit mode")

	// Input validation errors
	ErrValidation      = fmt.Errorf("validation failed")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// StatusError describes a non-2xx response. It unwraps to [ErrServer].
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%v: %s %s returned status %d", ErrServer, e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%v: %s %s returned status %d: %s", ErrServer, e.Method, e.Path, e.StatusCode, body)
}

func (e *StatusError) Unwrap() error {
	return ErrServer
}
