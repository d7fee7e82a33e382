package forecasting

import (
	"errors"
	"fmt"
)

var (
	// ErrForecastNotFound marks an edit or delete aimed at a missing record.
	ErrForecastNotFound = errors.New("forecast record not found")
)

// DataSourceError marks a failed read from one of the source tables. The
// whole request fails with it; partial bundles are never returned.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// ValidationError marks a malformed mutation payload. It is surfaced to
// the caller and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
