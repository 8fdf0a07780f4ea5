package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("backend unavailable")
	// ErrInvalidResponse indicates the backend answered with a body that does not match its schema.
	ErrInvalidResponse = errors.New("invalid backend response")
)

// Error is a failure reported by the backend itself.
type Error struct {
	Status  int
	Message string
	Path    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend error, request path: %s, code: %d, message: %s", e.Path, e.Status, e.Message)
}

// StatusOf returns the backend status code carried by err, or 0.
func StatusOf(err error) int {
	var backendErr *Error
	if errors.As(err, &backendErr) {
		return backendErr.Status
	}
	return 0
}
