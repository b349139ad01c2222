package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")
	// ErrNetwork indicates the request could not complete
	ErrNetwork = errors.New("tmdb request failed")
	// ErrMalformedPayload indicates the response body could not be decoded
	ErrMalformedPayload = errors.New("malformed tmdb response")
	// ErrInvalidArgument indicates a request that cannot be sent
	ErrInvalidArgument = errors.New("invalid tmdb request")
)

// Failure classifies the outcome of a client call
type Failure int

const (
	// FailureNone means the call succeeded
	FailureNone Failure = iota
	// FailureNetwork means the request could not complete
	FailureNetwork
	// FailureService means a non-success status or an undecodable payload
	FailureService
)

// String returns the string representation of a Failure
func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureNetwork:
		return "network"
	case FailureService:
		return "service"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by the client to a Failure
func Classify(err error) Failure {
	if err == nil {
		return FailureNone
	}
	if errors.Is(err, ErrNetwork) {
		return FailureNetwork
	}
	return FailureService
}

// APIError represents a non-success TMDB response
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tmdb API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 from the service
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsNotFound()
}

// RequestError wraps a transport failure with the endpoint it hit
type RequestError struct {
	Endpoint string
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrNetwork, e.Endpoint, e.Err)
}

// Unwrap exposes both ErrNetwork and the underlying transport error
func (e *RequestError) Unwrap() []error {
	return []error{ErrNetwork, e.Err}
}
