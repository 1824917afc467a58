package croissant

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoToken is returned before any I/O when an authenticated route is
	// called on a client without a token.
	ErrNoToken = errors.New("croissant: no token")
	// ErrUnauthorized matches any APIError with a 401 or 403 status.
	ErrUnauthorized = errors.New("croissant: unauthorized")
)

// APIError is a failed call: a non-2xx status, or a 2xx body whose message
// reports an error.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("croissant: status %d", e.Status)
	}
	return fmt.Sprintf("croissant: status %d: %s", e.Status, e.Message)
}

func (e *APIError) StatusCode() int { return e.Status }

// PublicMessage is the server's own explanation, safe to show to the user.
func (e *APIError) PublicMessage() string { return e.Message }

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// Message returns the server message carried by err, or fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
