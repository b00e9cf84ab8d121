// Package models defines typed errors for better error handling and context.
package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a pipeline failure for callers that map it to a response.
type ErrorKind string

const (
	KindInvalidInput ErrorKind = "invalid_input"
	KindUnreachable  ErrorKind = "unreachable"
	KindTimeout      ErrorKind = "timeout"
	KindUpstream     ErrorKind = "upstream"
	KindCanceled     ErrorKind = "canceled"
	KindUnexpected   ErrorKind = "unexpected"
)

// InvalidURLError represents an absent or unparsable URL
type InvalidURLError struct {
	URL string
	Err error
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid URL %q: %v", e.URL, e.Err)
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

// UnreachableError represents a host that could not be resolved or refused the connection
type UnreachableError struct {
	URL string
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("unreachable URL %s: %v", e.URL, e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// TimeoutError represents a timeout error
type TimeoutError struct {
	Operation string
	Timeout   string
	Err       error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout during %s after %s: %v", e.Operation, e.Timeout, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// HTTPError represents a non-success status returned by the target site
type HTTPError struct {
	StatusCode int
	URL        string
	Err        error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for URL %s: %v", e.StatusCode, e.URL, e.Err)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// CanceledError represents an invocation abandoned by its caller
type CanceledError struct {
	URL string
	Err error
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("request for %s canceled: %v", e.URL, e.Err)
}

func (e *CanceledError) Unwrap() error { return e.Err }

// ContentExtractionError represents an error during content extraction
type ContentExtractionError struct {
	Step string
	Err  error
}

func (e *ContentExtractionError) Error() string {
	return fmt.Sprintf("content extraction failed at %s: %v", e.Step, e.Err)
}

func (e *ContentExtractionError) Unwrap() error { return e.Err }

// KindOf reports the kind of err. Errors outside the taxonomy are unexpected.
func KindOf(err error) ErrorKind {
	var (
		invalid     *InvalidURLError
		unreachable *UnreachableError
		timeout     *TimeoutError
		upstream    *HTTPError
		canceled    *CanceledError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &invalid):
		return KindInvalidInput
	case errors.As(err, &unreachable):
		return KindUnreachable
	case errors.As(err, &timeout):
		return KindTimeout
	case errors.As(err, &upstream):
		return KindUpstream
	case errors.As(err, &canceled):
		return KindCanceled
	default:
		return KindUnexpected
	}
}
