package store

import "errors"

// Error Handling Guidelines:
// - Stores: wrap transport errors with fmt.Errorf("context: %w", err)
// - Handlers: translate store errors via apperrors.* for HTTP responses
// - Soft I/O failures never escape the hybrid repository; they trigger
//   fallback to the local store instead.

// Predefined errors for the store layer.
var (
	// ErrNotFound indicates that a requested record was not found. It is a
	// valid outcome, not a failure: callers render a not-found state.
	ErrNotFound = errors.New("record not found")

	// ErrNotConfigured indicates the store has no credentials and cannot be
	// used. A recognized mode (offline), not a failure.
	ErrNotConfigured = errors.New("store not configured")

	// ErrUnavailable indicates a soft I/O failure: the backend was
	// unreachable or returned an unexpected response.
	ErrUnavailable = errors.New("store unavailable")
)
