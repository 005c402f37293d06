package upstream

import (
	"errors"
	"fmt"
)

// FailureKind is the closed set of ways a core API call can fail, so callers
// never have to probe error shapes field by field.
type FailureKind string

const (
	// KindRejection means the core API answered with a structured error;
	// its message should be shown to the user verbatim when present.
	KindRejection FailureKind = "rejection"
	// KindTransport means the call never produced a usable response:
	// network error, timeout, or an unparseable body.
	KindTransport FailureKind = "transport"
)

// FallbackMessage is shown when a failure carries no usable backend message.
const FallbackMessage = "Something went wrong. Please try again."

// Failure is the error type returned by every collaborator call.
type Failure struct {
	Kind       FailureKind
	StatusCode int
	Message    string
	cause      error
}

func (f *Failure) Error() string {
	switch {
	case f.cause != nil:
		return fmt.Sprintf("upstream %s failure: %v", f.Kind, f.cause)
	case f.Message != "":
		return fmt.Sprintf("upstream %s failure (status %d): %s", f.Kind, f.StatusCode, f.Message)
	default:
		return fmt.Sprintf("upstream %s failure (status %d)", f.Kind, f.StatusCode)
	}
}

func (f *Failure) Unwrap() error {
	return f.cause
}

// UserMessage returns the backend's message when one was given and the
// generic fallback otherwise. Transport failures never expose internals.
func (f *Failure) UserMessage() string {
	if f.Kind == KindRejection && f.Message != "" {
		return f.Message
	}
	return FallbackMessage
}

func rejection(status int, message string) *Failure {
	return &Failure{Kind: KindRejection, StatusCode: status, Message: message}
}

func transport(err error) *Failure {
	return &Failure{Kind: KindTransport, cause: err}
}

// AsFailure extracts the Failure from an error chain, if any.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
