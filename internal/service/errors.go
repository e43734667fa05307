package service

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrNoStatus = errors.New("unexpected empty status")

// TransportError reports a network failure or a non-2xx answer on the read,
// status-update and cancel paths. StatusCode is zero for network failures.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NotFoundError is a TransportError for a single order the backend no
// longer knows about.
type NotFoundError struct {
	ID        int64
	Transport *TransportError
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("order %d not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	if e.Transport == nil {
		return nil
	}
	return e.Transport
}

// ValidationError carries the raw body of a rejected creation request.
// Message may be empty when the backend sent no body.
type ValidationError struct {
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("order rejected with status %d", e.StatusCode)
	}
	return e.Message
}

func statusError(op string, code int) *TransportError {
	return &TransportError{
		Op:         op,
		StatusCode: code,
		Err:        errors.New(http.StatusText(code)),
	}
}
