package domain

import "errors"

type ErrorKind int

const (
	ErrorUnknown ErrorKind = iota
	ErrorValidation
	ErrorNotFound
	ErrorUnauthorized
)

// Error is the tagged error returned by the flows. It carries no rendering
// logic; the HTTP boundary translates the kind into a status and envelope.
type Error struct {
	Kind   ErrorKind
	Fields map[string][]string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrorValidation:
		return "form validation error"
	case ErrorNotFound:
		return "not found error"
	case ErrorUnauthorized:
		return "unauthorized error"
	}

	return "unknown error"
}

func Validation(fields map[string][]string) *Error {
	return &Error{Kind: ErrorValidation, Fields: fields}
}

func NotFound() *Error {
	return &Error{Kind: ErrorNotFound}
}

func Unauthorized() *Error {
	return &Error{Kind: ErrorUnauthorized}
}

// IsNotFound reports whether err is a not-found Error.
func IsNotFound(err error) bool {
	var domainErr *Error
	return errors.As(err, &domainErr) && domainErr.Kind == ErrorNotFound
}
