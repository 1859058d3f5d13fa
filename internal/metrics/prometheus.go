package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nicktelford/hbase/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Metrics are registered lazily on first use so that constructing the
// collector never panics on duplicate registration in tests.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	attempts      *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	reconciles    *prometheus.CounterVec
	staleCleanups prometheus.Counter
	activeGauge   prometheus.Gauge
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "hbase" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "hbase"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.attempts = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "election",
			Name:      "attempts_total",
			Help:      "Total registration attempts by outcome (elected,lost).",
		}, []string{"outcome"})

		p.transitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "election",
			Name:      "state_transitions_total",
			Help:      "Total election state transitions by from/to state.",
		}, []string{"from", "to"})

		p.reconciles = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "election",
			Name:      "reconciles_total",
			Help:      "Total watch-and-check reconciliations by observed existence.",
		}, []string{"exists"})

		p.staleCleanups = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "election",
			Name:      "stale_cleanups_total",
			Help:      "Total deletions of leftover registrations from earlier incarnations.",
		})

		p.activeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "election",
			Name:      "elected",
			Help:      "Whether this process is the active leader (1=elected,0=not).",
		})

		p.reg.MustRegister(p.attempts)
		p.reg.MustRegister(p.transitions)
		p.reg.MustRegister(p.reconciles)
		p.reg.MustRegister(p.staleCleanups)
		p.reg.MustRegister(p.activeGauge)
	})
}

// RecordAttempt records one registration attempt and its outcome.
func (p *PrometheusCollector) RecordAttempt(elected bool) {
	p.ensureRegistered()
	if elected {
		p.attempts.WithLabelValues("elected").Inc()
		p.activeGauge.Set(1)
	} else {
		p.attempts.WithLabelValues("lost").Inc()
	}
}

// RecordStateTransition records an election state transition.
func (p *PrometheusCollector) RecordStateTransition(from, to types.State) {
	p.ensureRegistered()
	p.transitions.WithLabelValues(from.String(), to.String()).Inc()
	if to == types.StateStopped {
		p.activeGauge.Set(0)
	}
}

// RecordReconcile records one reconciliation and the observed key existence.
func (p *PrometheusCollector) RecordReconcile(exists bool) {
	p.ensureRegistered()
	if exists {
		p.reconciles.WithLabelValues("true").Inc()
	} else {
		p.reconciles.WithLabelValues("false").Inc()
	}
}

// RecordStaleCleanup records the deletion of a stale self-registration.
func (p *PrometheusCollector) RecordStaleCleanup() {
	p.ensureRegistered()
	p.staleCleanups.Inc()
}
