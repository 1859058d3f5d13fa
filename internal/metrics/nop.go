// Package metrics provides metrics collector implementations for the library.
package metrics

import "github.com/nicktelford/hbase/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordAttempt discards the attempt metric.
func (n *NopMetrics) RecordAttempt(_ /* elected */ bool) {
	// No-op
}

// RecordStateTransition discards the state transition metric.
func (n *NopMetrics) RecordStateTransition(_ /* from */, _ /* to */ types.State) {
	// No-op
}

// RecordReconcile discards the reconcile metric.
func (n *NopMetrics) RecordReconcile(_ /* exists */ bool) {
	// No-op
}

// RecordStaleCleanup discards the stale cleanup metric.
func (n *NopMetrics) RecordStaleCleanup() {
	// No-op
}
