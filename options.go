package hbase

// Option configures a Coordinator with optional dependencies.
type Option func(*coordinatorOptions)

// coordinatorOptions holds optional Coordinator configuration.
type coordinatorOptions struct {
	hooks   *Hooks
	metrics MetricsCollector
	logger  Logger
	status  StatusSink
}

// WithHooks sets lifecycle event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewCoordinator
//
// Example:
//
//	hooks := &hbase.Hooks{
//	    OnElected: func(ctx context.Context, id hbase.Identity) error {
//	        return startLeaderDuties(ctx)
//	    },
//	}
//	coord, err := hbase.NewCoordinator(&cfg, store, id, proc, hbase.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *coordinatorOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewCoordinator
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *coordinatorOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewCoordinator
func WithLogger(logger Logger) Option {
	return func(o *coordinatorOptions) {
		o.logger = logger
	}
}

// WithStatusSink sets a sink for operator-facing phase updates.
//
// The sink receives free-text descriptions such as "registering as the
// active leader" purely for visibility; nothing reads them back.
//
// Parameters:
//   - sink: StatusSink implementation
//
// Returns:
//   - Option: Functional option for NewCoordinator
func WithStatusSink(sink StatusSink) Option {
	return func(o *coordinatorOptions) {
		o.status = sink
	}
}
