package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for domain operations
var (
	// ErrLoadFailed matches every catalog failure a view should render as "failed to load"
	ErrLoadFailed = errors.New("failed to load")

	// ErrInvalidAPIKey indicates the catalog rejected the configured API key
	ErrInvalidAPIKey = errors.New("tmdb api key is invalid")

	// ErrNotConfigured indicates no API key has been configured yet
	ErrNotConfigured = errors.New("tmdb api key is not configured")

	// ErrNotFound indicates the requested key or movie does not exist
	ErrNotFound = errors.New("not found")
)

// NetworkError is returned when a catalog request could not complete:
// connectivity failure, unreadable body, or a non-2xx status.
type NetworkError struct {
	Op         string // Gateway operation, e.g. "search"
	URL        string // Request URL with credentials removed
	StatusCode int    // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is reports ErrLoadFailed for every network error and ErrInvalidAPIKey for 401s.
func (e *NetworkError) Is(target error) bool {
	switch target {
	case ErrLoadFailed:
		return true
	case ErrInvalidAPIKey:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// DecodeError is returned when a response body does not match the expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decoding response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports ErrLoadFailed so views treat decode failures like network failures.
func (e *DecodeError) Is(target error) bool {
	return target == ErrLoadFailed
}

// StorageReadError is returned when a persisted value is missing or unparsable.
// Callers recover by falling back to defaults.
type StorageReadError struct {
	Key string
	Err error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("reading %q: %v", e.Key, e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }
