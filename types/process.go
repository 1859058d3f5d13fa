package types

// Process exposes the hosting process's lifecycle to the coordinator.
//
// The coordinator never owns process lifecycle; it only polls the stopping
// flag while waiting and escalates unrecoverable coordination failures
// through Abort.
type Process interface {
	// IsStopping reports whether the hosting process has begun shutdown.
	IsStopping() bool

	// Abort escalates a fatal condition to the hosting process.
	//
	// Called when an election-critical coordination call failed and the
	// local view of leadership can no longer be trusted. Implementations
	// typically log and terminate; they must not return control expecting
	// the election to continue.
	//
	// Parameters:
	//   - reason: Human-readable description of the failure
	//   - cause: Underlying error, may be nil
	Abort(reason string, cause error)
}

// StatusSink accepts free-text phase updates for operator visibility.
//
// Purely informational; implementations must not feed status text back
// into any behavioral decision.
type StatusSink interface {
	// SetStatus records the current phase description.
	SetStatus(status string)
}

// NopStatusSink is a StatusSink that discards all updates.
type NopStatusSink struct{}

// SetStatus discards the update.
func (NopStatusSink) SetStatus(string) {}
