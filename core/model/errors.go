package model

import "errors"

// Error taxonomy of the engine. Conflicts are never errors: only malformed
// input or unknown identifiers surface here.
var (
	// ErrNotFound is returned for unknown pilot, drone, mission or
	// assignment identifiers.
	ErrNotFound = errors.New("not found")
	// ErrInvalidDateRange is returned when an end date precedes its start
	// date. Rejected before any matching or detection logic runs.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrAmbiguousIdentity is returned when a mission reference matches no
	// known naming convention and the caller must disambiguate.
	ErrAmbiguousIdentity = errors.New("ambiguous mission identity")
)
