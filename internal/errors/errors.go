package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for the aggregation engine. Every upstream failure is
// marked with one of these so callers can branch on kind without string
// matching.
var (
	// ErrReport is fatal: the initial subscriber listing for an account
	// could not be obtained, so there is nothing to report.
	ErrReport = new(ErrCodeReport, "report failed")

	// ErrUpstreamTimeout marks an OCS call that exceeded its deadline.
	ErrUpstreamTimeout = new(ErrCodeUpstreamTimeout, "upstream timeout")
	// ErrUpstreamHTTP marks a non-2xx OCS response.
	ErrUpstreamHTTP = new(ErrCodeUpstreamHTTP, "upstream http error")
	// ErrUpstreamEmpty marks an empty or non-JSON OCS response body where
	// structured data was required.
	ErrUpstreamEmpty = new(ErrCodeUpstreamEmpty, "upstream empty response")

	ErrValidation = new(ErrCodeValidation, "validation error")
	ErrHTTPClient = new(ErrCodeHTTPClient, "http client error")
	ErrSystem     = new(ErrCodeSystemError, "system error")
)

const (
	ErrCodeReport          = "report_failed"
	ErrCodeUpstreamTimeout = "upstream_timeout"
	ErrCodeUpstreamHTTP    = "upstream_http_error"
	ErrCodeUpstreamEmpty   = "upstream_empty_response"
	ErrCodeValidation      = "validation_error"
	ErrCodeHTTPClient      = "http_client_error"
	ErrCodeSystemError     = "system_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsUpstream reports whether an error came from a single OCS call, i.e.
// any of the per-call upstream kinds. These are always recoverable at the
// resolver or enricher boundary.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstreamTimeout) ||
		errors.Is(err, ErrUpstreamHTTP) ||
		errors.Is(err, ErrUpstreamEmpty)
}

// IsReport checks if an error is a fatal report error
func IsReport(err error) bool {
	return errors.Is(err, ErrReport)
}

// IsUpstreamTimeout checks if an error is an upstream timeout
func IsUpstreamTimeout(err error) bool {
	return errors.Is(err, ErrUpstreamTimeout)
}

// IsUpstreamHTTP checks if an error is a non-2xx upstream response
func IsUpstreamHTTP(err error) bool {
	return errors.Is(err, ErrUpstreamHTTP)
}

// IsUpstreamEmpty checks if an error is an empty upstream response
func IsUpstreamEmpty(err error) bool {
	return errors.Is(err, ErrUpstreamEmpty)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
