package provider

import "errors"

// Error codes used across providers.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeTransient    = "TRANSIENT"
	CodeInvalidTitle = "INVALID_TITLE"
)

// Error represents a classified failure from a provider call.
type Error struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewNotFound reports that a provider exhausted its lookup paths without
// producing a record.
func NewNotFound(provider, message string) *Error {
	return &Error{Provider: provider, Code: CodeNotFound, Message: message}
}

// NewTransient wraps a network or parse fault. Transient failures are
// distinct from NotFound: the resolver degrades them instead of giving up.
func NewTransient(provider string, err error) *Error {
	return &Error{Provider: provider, Code: CodeTransient, Message: provider + ": " + err.Error(), Err: err}
}

// ErrInvalidTitle is returned when normalization leaves nothing to search
// for. It short-circuits resolution before any network call.
var ErrInvalidTitle = &Error{Code: CodeInvalidTitle, Message: "title is empty after normalization"}

// IsNotFound reports whether err is a NOT_FOUND or INVALID_TITLE provider
// error, i.e. a terminal "no record" outcome rather than a fault.
func IsNotFound(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == CodeNotFound || pe.Code == CodeInvalidTitle
	}
	return false
}

// IsTransient reports whether err is a classified transient provider fault.
func IsTransient(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == CodeTransient
	}
	return false
}
