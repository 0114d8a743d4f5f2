package errs

import "errors"

// Sentinel errors shared by the usecase and handler layers
var (
	// Reward errors
	ErrRewardNotFound = errors.New("reward not found")
	ErrClaimRejected  = errors.New("claim rejected")

	// Authority errors
	ErrAuthExpired       = errors.New("authentication expired")
	ErrAuthRequired      = errors.New("authentication required")
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// Local storage errors; never surfaced to users
	ErrStorageCorrupt = errors.New("stored data corrupt")
	ErrStorageFailed  = errors.New("storage operation failed")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)
