package domain

import "errors"

var (
	// ErrVegetableNotFound is returned when no catalog record matches a name
	ErrVegetableNotFound = errors.New("vegetable not found in catalog")

	// ErrLookupFailed is returned when a catalog query fails for reasons other
	// than the record being absent; callers degrade it to an unmatched result
	ErrLookupFailed = errors.New("catalog lookup failed")

	// ErrInferenceFailed is returned when the vision service call fails; the
	// current scan is abandoned and the user must retry
	ErrInferenceFailed = errors.New("vision inference failed")

	// ErrScanInProgress is returned when an analysis is already running for
	// the same kiosk session
	ErrScanInProgress = errors.New("analysis already in progress for session")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
