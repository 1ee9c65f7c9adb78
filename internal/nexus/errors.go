package nexus

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is returned when the server answered with a non-2xx status.
// The response body is never inspected for an error payload.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! Status: %d (%s %s)", e.StatusCode, e.Method, e.URL)
}

// TransportError is returned when a request never reached the server or no
// complete response was received (DNS, connection refused, broken body).
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when a successful response carries a body that
// does not match the expected shape.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid response: %s: %v", e.Reason, e.Err)
	}
	return "invalid response: " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// TokenizationError carries the message reported by the external payment
// widget when it rejects card input.
type TokenizationError struct {
	Message string
}

func (e *TokenizationError) Error() string {
	return e.Message
}

// IsHTTPError reports whether err is, or wraps, an *HTTPError.
func IsHTTPError(err error) bool {
	var target *HTTPError
	return errors.As(err, &target)
}

// IsTransportError reports whether err is, or wraps, a *TransportError.
func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an *HTTPError.
func StatusCode(err error) int {
	var target *HTTPError
	if errors.As(err, &target) {
		return target.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether the server rejected the API key.
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}
