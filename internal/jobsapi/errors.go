package jobsapi

import (
	"errors"
	"fmt"
)

// NetworkErrorMessage is the message carried by failures that never
// produced an HTTP response.
const NetworkErrorMessage = "network error"

// Error is returned by every Client operation that fails. Message is safe to
// show to visitors; Err holds the underlying cause for logs.
type Error struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jobsapi %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("jobsapi %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsNetwork reports whether the request failed before a response arrived.
func (e *Error) IsNetwork() bool { return e.StatusCode == 0 }

// Message extracts the visitor-facing message from err. It returns "" when
// err is not a transport error or carries no message.
func Message(err error) string {
	var te *Error
	if errors.As(err, &te) {
		return te.Message
	}
	return ""
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var te *Error
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}

func statusMessage(code int) string {
	return fmt.Sprintf("request failed with status code %d", code)
}

// ErrorClass tags metrics with the failure family.
func (e *Error) ErrorClass() string {
	switch {
	case e.StatusCode == 0:
		return "jobsapi_network"
	case e.StatusCode >= 500:
		return "jobsapi_status_5xx"
	case e.StatusCode >= 400:
		return "jobsapi_status_4xx"
	default:
		return "jobsapi_decode"
	}
}
