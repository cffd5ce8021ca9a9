package client

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	msgNotAWholeNumber = "Please enter a whole number."
	msgTooSmall        = "Count must be at least 1."
	msgTooLarge        = "Count is too large. Please use 5000 or less."
	msgBadResponse     = "Bad response from server."
	msgCouldNotCopy    = "Could not copy to clipboard in this terminal."
	msgCouldNotFetch   = "Could not generate names."
)

type ValidationKind int

const (
	NotAWholeNumber ValidationKind = iota + 1
	TooSmall
	TooLarge
)

// ValidationError is returned for a count rejected before any request is made.
// Its message is shown to the user as is.
type ValidationError struct {
	Kind ValidationKind
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case TooSmall:
		return msgTooSmall
	case TooLarge:
		return msgTooLarge
	default:
		return msgNotAWholeNumber
	}
}

// ErrBadResponse means a success status came with a body that is not {"names": [string...]}.
var ErrBadResponse = errors.New("bad response from server")

// RequestFailed is a non-2xx response. Message comes from the JSON "error" field or is synthesized from Status.
type RequestFailed struct {
	Status  int
	Message string
}

func (e *RequestFailed) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

func newRequestFailed(status int, message string) *RequestFailed {
	if message == "" {
		message = fmt.Sprintf("Request failed (%d)", status)
	}
	return &RequestFailed{Status: status, Message: message}
}

// ClipboardError wraps a failed clipboard write. It never affects the generated names.
type ClipboardError struct {
	Cause error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("failed to copy to clipboard: %v", e.Cause)
}

func (e *ClipboardError) Unwrap() error {
	return e.Cause
}

// UserMessage converts any error produced by the panel into the single line shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}
	var requestFailed *RequestFailed
	if errors.As(err, &requestFailed) {
		return requestFailed.Message
	}
	var clipboardErr *ClipboardError
	if errors.As(err, &clipboardErr) {
		return msgCouldNotCopy
	}
	if errors.Is(err, ErrBadResponse) {
		return msgBadResponse
	}
	return msgCouldNotFetch
}
