package truesocks

import (
	"errors"
	"fmt"

	"github.com/truesocks/client-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrUnauthorized is returned when the API rejects the key.
	ErrUnauthorized = errors.New("invalid or expired API key")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrProxyIsFresh is returned when a regular-pool operation is
	// attempted on a fresh-pool proxy.
	ErrProxyIsFresh = errors.New("proxy is in the fresh pool")

	// ErrProxyNotFresh is returned when a fresh-pool operation is
	// attempted on a regular-pool proxy.
	ErrProxyNotFresh = errors.New("proxy is not in the fresh pool")

	// ErrNotRentable is returned when a private rent is attempted on a
	// proxy with no private rent offer.
	ErrNotRentable = errors.New("proxy has no private rent offer")
)

// TrueSocksError is implemented by all SDK errors.
type TrueSocksError interface {
	error
	TrueSocksError() // marker method
}

// APIError is an error reported by the TrueSocks API itself: the HTTP
// exchange succeeded but the response envelope carried a non-success
// status code.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("API status %d", e.Code)
}

// TrueSocksError implements the TrueSocksError interface.
func (e *APIError) TrueSocksError() {}

// HTTPError is a non-2xx HTTP response from the API endpoint.
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

// TrueSocksError implements the TrueSocksError interface.
func (e *HTTPError) TrueSocksError() {}

// TransportError represents a network-level failure.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// TrueSocksError implements the TrueSocksError interface.
func (e *TransportError) TrueSocksError() {}

// DecodeError indicates a response that did not match the shape contracted
// by the API version.
type DecodeError struct {
	Command string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Command, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TrueSocksError implements the TrueSocksError interface.
func (e *DecodeError) TrueSocksError() {}

// wrapError converts internal API errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return &APIError{
			Code:    statusErr.Code,
			Message: statusErr.Message,
		}
	}

	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return &HTTPError{StatusCode: httpErr.StatusCode}
	}

	var transportErr *api.TransportError
	if errors.As(err, &transportErr) {
		return &TransportError{Err: transportErr.Err}
	}

	var decodeErr *api.DecodeError
	if errors.As(err, &decodeErr) {
		return &DecodeError{Command: decodeErr.Command, Err: decodeErr.Err}
	}

	return err
}
