// Package types defines the public types and interfaces shared across the
// library.
//
// It exists as a separate package so that internal packages can depend on
// these definitions without importing the root package, avoiding import
// cycles. The root package re-exports the commonly used types via aliases
// for convenience.
package types
