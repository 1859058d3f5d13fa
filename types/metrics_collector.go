package types

// MetricsCollector defines methods for recording election metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// All methods are called from internal goroutines and must be thread-safe.
type MetricsCollector interface {
	// RecordAttempt records one registration attempt and its outcome.
	RecordAttempt(elected bool)

	// RecordStateTransition records an election state transition.
	RecordStateTransition(from, to State)

	// RecordReconcile records one watch-and-check reconciliation and the
	// observed key existence.
	RecordReconcile(exists bool)

	// RecordStaleCleanup records the deletion of a leftover registration
	// from a previous incarnation of this process.
	RecordStaleCleanup()
}
