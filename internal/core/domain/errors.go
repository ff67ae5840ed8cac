package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoArtifact indicates no directory artifact has been built yet.
	ErrNoArtifact = errors.New("no directory artifact")

	// ErrWatchUnsupported indicates the row source cannot push change
	// events.
	ErrWatchUnsupported = errors.New("watch not supported")

	// Build Errors.

	// ErrFetch indicates the row source could not be read in full.
	// A partial fetch never reaches the synthesizer; the run aborts.
	ErrFetch = errors.New("fetching rows failed")

	// ErrWrite indicates the artifact could not be persisted.
	// The previous artifact, if any, is left in place.
	ErrWrite = errors.New("writing artifact failed")

	// ErrSourceValidation indicates the row source is misconfigured
	// or its credentials are invalid.
	ErrSourceValidation = errors.New("row source validation failed")
)
