package recordclient

import (
	"errors"
	"fmt"
)

var ErrMalformedResponse = errors.New("malformed record store response")

// StatusError is implemented by every failure of a record store call.
// Status is the HTTP status, or 0 when no response arrived.
type StatusError interface {
	error
	Status() int
}

// RemoteError is a non-2xx response from the record store.
type RemoteError struct {
	StatusCode int
	Message    string
	Method     string
	URL        string
	// Fallback is set when the response carried no usable message and Message is the generic one.
	Fallback bool
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("record store error [%d] %s %s: %s", e.StatusCode, e.Method, e.URL, e.Message)
}

func (e *RemoteError) Status() int {
	return e.StatusCode
}

// ServerMessage returns the message the record store sent, or "" when it sent none.
func (e *RemoteError) ServerMessage() string {
	if e.Fallback {
		return ""
	}
	return e.Message
}

// NetworkError is a call that never produced a response.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("record store unreachable %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Status() int {
	return 0
}
