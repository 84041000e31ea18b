package core

import "errors"

// Common errors.
var (
	// ErrMalformedRegion reports a document missing a chaos marker, or one
	// where the end marker does not come strictly after the start marker.
	// The text doubles as the user-facing violation message.
	ErrMalformedRegion = errors.New("Missing or misordered chaos markers")

	// ErrFetch marks environment failures while reading the change set or
	// file contents. These abort the run; they are never violations.
	ErrFetch = errors.New("source fetch failed")
)
