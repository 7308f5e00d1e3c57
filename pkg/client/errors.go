package client

import (
	"errors"
	"fmt"
)

// ErrEmptyID is returned when a program lookup is attempted without an id.
var ErrEmptyID = errors.New("program id is empty")

// ResponseError represents a non-2xx HTTP response from the content source.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// TransportError represents a failure to complete the exchange: dial, DNS,
// timeout, cancellation, or an undecodable body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsStatus returns true if err (or any wrapped error) is a ResponseError with the given status code.
func IsStatus(err error, code int) bool {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == code
	}
	return false
}

// IsTransport reports whether err (or any wrapped error) is a TransportError.
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// outcome classifies err for metrics labels.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsTransport(err):
		return "transport_error"
	default:
		return "response_error"
	}
}
