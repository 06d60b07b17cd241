package api

import "errors"

var (
	// ErrUnavailable means no response could be obtained from the service.
	ErrUnavailable = errors.New("service unavailable")

	// ErrUnauthorized means the service rejected the caller's credentials
	// (401/403-class response). Session-fatal for the caller.
	ErrUnauthorized = errors.New("unauthorized")
)

// RejectedError is a reachable-but-unsuccessful response. Message is the
// human-readable text extracted from the error payload.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}
