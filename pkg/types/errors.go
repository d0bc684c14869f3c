package types

import "errors"

// Store configuration errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDataDirEmpty   = errors.New("data directory must not be empty")
)

// ErrNotFound is returned by collection lookups and updates when no
// record carries the requested ID.
var ErrNotFound = errors.New("record not found")

// Validation errors raised before a save is accepted. They never reach
// persistence: a save that fails validation leaves the stored collection
// untouched.
var (
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrInvalidStatus  = errors.New("invalid lead status")
	ErrEmptyName      = errors.New("name must not be empty")
	ErrNegativeScore  = errors.New("score must not be negative")
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// ErrSimulatedTransport is the sentinel for injected transport failures.
// The simulated executor returns errors that match it via errors.Is;
// callers recover by retrying (refresh or reset).
var ErrSimulatedTransport = errors.New("simulated transport error")

// ErrQuotaExceeded is returned by storage media when a write would push
// total usage past the capacity ceiling. The adapter degrades it to a
// false return from Set rather than propagating.
var ErrQuotaExceeded = errors.New("storage quota exceeded")
