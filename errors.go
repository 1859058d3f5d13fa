package hbase

import "errors"

// Sentinel errors returned by the Coordinator constructor.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStoreRequired is returned when the coordination store is nil.
	ErrStoreRequired = errors.New("coordination store is required")

	// ErrProcessRequired is returned when the hosting process is nil.
	ErrProcessRequired = errors.New("hosting process is required")

	// ErrIdentityRequired is returned when the candidate identity has no host.
	ErrIdentityRequired = errors.New("candidate identity is required")
)
