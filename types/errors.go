package types

import "errors"

// Sentinel errors shared across components.
//
// These provide type-safe error checking using errors.Is(). Components wrap
// external errors with context using fmt.Errorf("...: %w", err).
var (
	// ErrConnectivity indicates a coordination-service connectivity issue.
	// Store backends wrap transport-level failures with this sentinel so
	// hosts can distinguish network failures from application errors in
	// their abort handling.
	ErrConnectivity = errors.New("connectivity issue")

	// ErrStoreClosed is returned by store operations after the store has
	// been closed.
	ErrStoreClosed = errors.New("coordination store closed")
)
