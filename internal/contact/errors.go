package contact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes submission failures.
type ErrorKind string

const (
	// KindValidation means a required field is empty.
	KindValidation ErrorKind = "validation"
	// KindTimeout means the relay did not answer in time.
	KindTimeout ErrorKind = "timeout"
	// KindRelay means the relay failed, panicked, or is not configured.
	KindRelay ErrorKind = "relay"
)

// Error is a submission failure shown inline on the form.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a contact error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind == kind
	}
	return false
}

// UserMessage is the text shown to the visitor. Causes are kept for logs.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Message
	}
	return msgRelayFailed
}

const (
	msgTimeout       = "The mail server is too slow to respond. Please try again."
	msgRelayFailed   = "Something went wrong while sending. Please try again."
	msgNotConfigured = "The contact relay is not configured."
	msgCancelled     = "Sending was cancelled."
)

func validationError(missing []Field) *Error {
	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = f.String()
	}
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf("All fields are required (missing: %s).", strings.Join(names, ", ")),
	}
}

func timeoutError() *Error {
	return &Error{Kind: KindTimeout, Message: msgTimeout}
}

func relayError(cause error) *Error {
	return &Error{Kind: KindRelay, Message: msgRelayFailed, Err: cause}
}
