package batch

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when retry is configured with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrCoordinatorClosed is returned when a batch is submitted after Release.
	ErrCoordinatorClosed = errors.New("coordinator is closed")

	// ErrItemTimeout is recorded on results whose task exceeded the per-item
	// timeout.
	ErrItemTimeout = errors.New("item processing timed out")
)
