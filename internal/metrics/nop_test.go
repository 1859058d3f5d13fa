package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicktelford/hbase/types"
)

func TestNewNop(t *testing.T) {
	metrics := NewNop()

	require.NotNil(t, metrics)
	require.IsType(t, &NopMetrics{}, metrics)
}

func TestNopMetrics_RecordAttempt(t *testing.T) {
	metrics := NewNop()

	// Should not panic with various inputs
	require.NotPanics(t, func() {
		metrics.RecordAttempt(true)
		metrics.RecordAttempt(false)
	})
}

func TestNopMetrics_RecordStateTransition(t *testing.T) {
	metrics := NewNop()

	// Should not panic with various inputs
	require.NotPanics(t, func() {
		metrics.RecordStateTransition(types.StateIdle, types.StateAttempting)
		metrics.RecordStateTransition(0, 0)
		metrics.RecordStateTransition(types.State(999), types.State(1000))
	})
}

func TestNopMetrics_RecordReconcile(t *testing.T) {
	metrics := NewNop()

	require.NotPanics(t, func() {
		metrics.RecordReconcile(true)
		metrics.RecordReconcile(false)
	})
}

func TestNopMetrics_RecordStaleCleanup(t *testing.T) {
	metrics := NewNop()

	require.NotPanics(t, func() {
		metrics.RecordStaleCleanup()
	})
}

func BenchmarkNopMetrics_RecordStateTransition(b *testing.B) {
	metrics := NewNop()
	for b.Loop() {
		metrics.RecordStateTransition(types.StateIdle, types.StateAttempting)
	}
}

func BenchmarkNopMetrics_RecordAttempt(b *testing.B) {
	metrics := NewNop()
	for b.Loop() {
		metrics.RecordAttempt(true)
	}
}
