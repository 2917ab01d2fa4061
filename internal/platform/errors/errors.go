package apperrors

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidStep        = errors.New("action not allowed at current step")
	ErrWorkflowExited     = errors.New("enrollment workflow exited")
	ErrWorkflowTerminal   = errors.New("enrollment workflow already completed")
	ErrSubmitInProgress   = errors.New("enrollment submission already in progress")
)

// IsTerminal reports whether err must not be retried: absent records and
// abandoned requests.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
