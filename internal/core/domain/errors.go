package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRunInProgress indicates a tracking run is already active.
	ErrRunInProgress = errors.New("run in progress")

	// Per-candidate errors. These skip one opinion; the run continues.

	// ErrNoText indicates no analyzable text could be resolved for an opinion.
	ErrNoText = errors.New("no text available")

	// ErrMalformedResponse indicates the classification response could not
	// be parsed into a valid result.
	ErrMalformedResponse = errors.New("malformed classification response")

	// Service errors. These abort the run: no later candidate can succeed.

	// ErrAuthInvalid indicates an external service rejected the credentials.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrQuotaExhausted indicates the classification service's quota is spent.
	ErrQuotaExhausted = errors.New("quota exhausted")

	// ErrDatasetWrite indicates a row could not be appended to the dataset.
	ErrDatasetWrite = errors.New("dataset write failed")

	// ErrRateLimited indicates an API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// IsFatal reports whether err aborts the whole run rather than one candidate.
func IsFatal(err error) bool {
	return errors.Is(err, ErrAuthInvalid) ||
		errors.Is(err, ErrQuotaExhausted) ||
		errors.Is(err, ErrDatasetWrite)
}
