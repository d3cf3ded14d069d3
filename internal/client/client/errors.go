package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrBadRequest        = errors.New("request rejected")
	ErrServer            = errors.New("server error")
	ErrMalformedResponse = errors.New("malformed response")
)

// AuthError describes a failed API call. Err is one of the sentinel errors
// above; Cause keeps the underlying transport or decoding error, if any.
type AuthError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
	Cause      error
}

func (e *AuthError) Error() string {
	s := e.Op
	if e.StatusCode != 0 {
		s += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Message != "" {
		s += ": " + e.Message
	}
	s += ": " + e.Err.Error()
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *AuthError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}
