package store

import (
	"errors"
	"fmt"
)

// Sentinel errors for missing configuration.
var (
	// ErrNoClient is returned when no S3 client is configured.
	ErrNoClient = errors.New("store: S3 client required")

	// ErrNoBucket is returned when the bucket name is missing.
	ErrNoBucket = errors.New("store: bucket name required")

	// ErrNoRegion is returned when the region is missing.
	ErrNoRegion = errors.New("store: region required")
)

// StoreError represents a failed object write. Failure implies the object
// was not created, so no cleanup is required.
type StoreError struct {
	// Key is the object key the write was attempted under.
	Key string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store [s3]: put %s: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}
