package hbase

import "github.com/nicktelford/hbase/types"

// Re-export types from the types subpackage.
//
// This file provides a stable public API for the library's core types and
// interfaces via type aliases. Internal packages depend on the types
// subpackage directly, which avoids import cycles while still offering the
// convenient hbase.State, hbase.Identity, etc. for users.
type (
	State    = types.State
	Identity = types.Identity
)

// Re-export interfaces from the types subpackage for convenience.
type (
	CoordinationStore = types.CoordinationStore
	WatchListener     = types.WatchListener
	Process           = types.Process
	StatusSink        = types.StatusSink
	MetricsCollector  = types.MetricsCollector
	Logger            = types.Logger
	Hooks             = types.Hooks
)

// Re-export State constants from the types subpackage.
const (
	StateIdle       = types.StateIdle
	StateAttempting = types.StateAttempting
	StateObserving  = types.StateObserving
	StateWaiting    = types.StateWaiting
	StateElected    = types.StateElected
	StateStopped    = types.StateStopped
)
