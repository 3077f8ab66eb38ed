package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus is the sentinel error wrapped by [StatusError].
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

// StatusError is returned when a response arrives with a non-success
// status code. The response body is never read for it.
type StatusError struct {
	Method     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %s request failed with status %d", e.Method, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// EncodeError is returned when a payload cannot be converted to the
// wire form of its declared payload type. It is raised before any
// network call is made.
type EncodeError struct {
	PayloadType PayloadType
	Err         error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding %v payload: %v", e.PayloadType, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a success response's body cannot be
// read or parsed as the declared response type. It is distinct from
// [StatusError]: the HTTP exchange itself succeeded.
type DecodeError struct {
	Method       string
	ResponseType ResponseType
	Err          error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %v response for %s: %v", e.ResponseType, e.Method, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
