package coaching

import "github.com/okoskine/fitcoach/internal/errors"

var (
	// ErrInvalidProfile marks profile input errors: missing or non-positive
	// required fields. The caller must supply complete data before retrying.
	ErrInvalidProfile = errors.NewSentinel("invalid profile")

	// ErrInsufficientHistory marks analysis failures caused by too little
	// measurement data: no measurement for the target week, or fewer than
	// two usable measurements overall. Non-retryable until more data exists.
	ErrInsufficientHistory = errors.NewSentinel("insufficient measurement history")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.NewSentinel("not found")
)
