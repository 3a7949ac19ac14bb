package sentinel

import "errors"

// Sentinel errors for infrastructure facts. The upstream client and cache
// backends return these (optionally wrapped) so callers can translate them
// into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist upstream
// - ErrUnavailable: upstream or cache backend temporarily unreachable
// - ErrInvalidState: entity in wrong state for requested operation
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
