package api

import (
	"errors"
	"fmt"
)

// Common API errors that can be checked with errors.Is.
var (
	// ErrUnauthorized indicates the API rejected the key.
	ErrUnauthorized = errors.New("invalid or expired API key")
	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// StatusError is an error reported by the API itself: the HTTP exchange
// succeeded but the response envelope carries a non-success status code.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("API status %d", e.Code)
}

// HTTPError is a non-2xx HTTP response without a usable envelope.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *HTTPError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// TransportError represents a network-level failure: the request never
// produced an HTTP response.
type TransportError struct {
	// URL is the request URL without its query string. The query carries
	// the API key, so it is kept out of error messages.
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError indicates the response body did not match the shape
// contracted by the API version.
type DecodeError struct {
	Command string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Command, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
