// Package apperr defines the user-facing error taxonomy and the mapping
// from repository/client errors into it. Errors from async mutations are
// never allowed to crash the engine; they are converted here and surfaced
// through a single dismissable error slot.
package apperr

import (
	"errors"
	"fmt"

	"github.com/roach88/stack/internal/supabase"
)

// Kind categorizes a user-facing error.
type Kind string

const (
	// KindNetwork covers remote failures: connectivity, non-2xx statuses,
	// and payload decode failures.
	KindNetwork Kind = "network"
	// KindValidation is reserved for local input validation.
	KindValidation Kind = "validation"
	// KindUnknown is the catch-all for errors with no better home.
	KindUnknown Kind = "unknown"
)

// AppError is an error presentable to the user.
type AppError struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e AppError) Error() string { return e.Message }

// Map converts any error from the remote client or a repository into an
// AppError. A missing session gets a friendly sign-in prompt; structured
// remote errors pick the most specific description and append the status
// when known; everything else passes through as a network failure.
func Map(err error) AppError {
	if errors.Is(err, supabase.ErrMissingSession) {
		return AppError{Kind: KindNetwork, Message: "Please sign in to continue."}
	}

	var remote *supabase.ErrorResponse
	if errors.As(err, &remote) {
		msg := remote.BestMessage()
		if msg == "" {
			msg = "The request failed."
		}
		if status := remote.StatusHint(); status != 0 {
			msg = fmt.Sprintf("%s (status: %d)", msg, status)
		}
		return AppError{Kind: KindNetwork, Message: msg}
	}

	return AppError{Kind: KindNetwork, Message: err.Error()}
}
