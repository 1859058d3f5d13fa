package hbase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nicktelford/hbase/internal/hooks"
	"github.com/nicktelford/hbase/internal/logger"
	"github.com/nicktelford/hbase/internal/metrics"
	"github.com/nicktelford/hbase/types"
)

// Coordinator elects exactly one active process among candidates sharing a
// cluster role, using a coordination store as the single source of truth.
//
// It handles:
//   - Watch-driven notifications on the election key
//   - Reconciling the local leader flag from the store
//   - The blocking create-or-wait election loop
//   - Best-effort status checks and resignation
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - The leader flag and its condition are the only shared mutable state;
//     every access holds the coordinator mutex
//
// Lifecycle:
//   - Create with NewCoordinator()
//   - Register with the store's notification delivery (the Coordinator is a
//     WatchListener)
//   - Call BecomeActive() from the candidate's own goroutine; it blocks
//     until elected or shutdown
//   - Call Resign() on shutdown
type Coordinator struct {
	cfg   Config
	store CoordinationStore
	id    Identity
	proc  Process

	// Optional dependencies
	hooks   *Hooks
	metrics MetricsCollector
	logger  Logger
	status  StatusSink

	// hasActive mirrors election key existence. Guarded by mu; cond is
	// broadcast on every transition to false so blocked candidates retry.
	mu        sync.Mutex
	cond      *sync.Cond
	hasActive bool

	resigned atomic.Bool

	state atomic.Int32 // State

	// Lifecycle context for background hook invocations.
	ctx    context.Context
	cancel context.CancelFunc
}

// Compile-time assertion that Coordinator implements WatchListener.
var _ types.WatchListener = (*Coordinator)(nil)

// NewCoordinator creates a new election coordinator.
//
// Returns a concrete *Coordinator struct following the "accept interfaces,
// return structs" principle. The caller must register the coordinator with
// the store's change notifications (for natskv: store.Subscribe(coord))
// before calling BecomeActive, or leader-loss events will go unseen.
//
// Parameters:
//   - cfg: Coordinator configuration (zero value is valid)
//   - store: Coordination store client
//   - id: This candidate's identity, stored under the election key on win
//   - proc: Hosting process collaborator for stop polling and fatal escalation
//   - opts: Optional configuration (hooks, metrics, logger, status sink)
//
// Returns:
//   - *Coordinator: Initialized coordinator instance
//   - error: Validation error if configuration or dependencies are invalid
func NewCoordinator(cfg *Config, store CoordinationStore, id Identity, proc Process, opts ...Option) (*Coordinator, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if proc == nil {
		return nil, ErrProcessRequired
	}
	if id.Host == "" {
		return nil, ErrIdentityRequired
	}

	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	options := &coordinatorOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Provide safe defaults for optional dependencies to avoid nil checks everywhere
	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logger.NewNop()
	}

	statusInstance := options.status
	if statusInstance == nil {
		statusInstance = types.NopStatusSink{}
	}

	hooksInstance := options.hooks
	if hooksInstance == nil {
		nopHooks := hooks.NewNop()
		hooksInstance = &nopHooks
	}

	c := &Coordinator{
		cfg:     *cfg,
		store:   store,
		id:      id,
		proc:    proc,
		hooks:   hooksInstance,
		metrics: metricsCollector,
		logger:  loggerInstance,
		status:  statusInstance,
	}
	c.cond = sync.NewCond(&c.mu)
	c.state.Store(int32(StateIdle))
	c.ctx, c.cancel = context.WithCancel(context.Background())

	return c, nil
}

// OnCreated handles a key-created notification from the store.
//
// Non-matching paths and events during shutdown are dropped silently.
func (c *Coordinator) OnCreated(path string) {
	if path != c.cfg.Key || c.stopping() {
		return
	}

	c.reconcile()
}

// OnDeleted handles a key-deleted notification from the store.
//
// Non-matching paths and events during shutdown are dropped silently.
func (c *Coordinator) OnDeleted(path string) {
	if path != c.cfg.Key || c.stopping() {
		return
	}

	c.reconcile()
}

// reconcile re-derives the local leader flag from the store.
//
// It does not matter whether the triggering event was a create or a delete:
// the store state may have changed again since the event was emitted, so
// existence is always re-checked, with the watch installed in the same
// operation so no further change slips by unseen.
func (c *Coordinator) reconcile() {
	c.mu.Lock()
	defer c.mu.Unlock()

	exists, err := c.store.WatchAndCheckExists(context.Background(), c.cfg.Key)
	if err != nil {
		// An uncertain leadership view cannot be papered over; retrying
		// locally risks two processes disagreeing about who is active.
		c.proc.Abort("unexpected coordination failure while reconciling leader state", err)

		return
	}

	c.metrics.RecordReconcile(exists)

	if exists {
		c.logger.Debug("a leader is now registered", "key", c.cfg.Key)
		c.hasActive = true
	} else {
		c.logger.Debug("no leader registered, waking waiting candidates", "key", c.cfg.Key)
		c.hasActive = false
		c.cond.Broadcast()
	}
}

// BecomeActive blocks until this candidate is elected the active leader or
// shutdown is requested.
//
// The atomic create-if-absent on the election key is the only path to
// becoming active. Candidates that lose the race wait for the incumbent's
// key to disappear and then race again, as an explicit iterative loop.
//
// The blocking wait is not preemptible by ctx; cancellation is cooperative
// through Process.IsStopping and Resign, either of which releases the wait.
// ctx bounds the individual store calls only.
//
// Parameters:
//   - ctx: Context for the store calls made by the loop
//
// Returns:
//   - bool: true if elected, false if shutdown was requested or a fatal
//     coordination failure was escalated
func (c *Coordinator) BecomeActive(ctx context.Context) bool {
	c.status.SetStatus("registering as the active leader")

	for {
		c.transitionState(c.State(), StateAttempting)

		created, err := c.store.CreateIfAbsent(ctx, c.cfg.Key, c.id.Encode())
		if err != nil {
			c.proc.Abort("unexpected coordination failure while registering as leader", err)

			return false
		}

		if created {
			c.mu.Lock()
			c.hasActive = true
			c.mu.Unlock()

			c.metrics.RecordAttempt(true)
			c.transitionState(c.State(), StateElected)
			c.status.SetStatus("registered as the active leader")
			c.logger.Info("elected as active leader",
				"identity", c.id.String(),
				"fingerprint", c.id.Fingerprint(),
			)
			c.runElectedHook()

			return true
		}

		c.metrics.RecordAttempt(false)
		c.transitionState(c.State(), StateObserving)

		// Another candidate registered first, or this process's own key
		// from an earlier incarnation has not expired yet.
		c.mu.Lock()
		c.hasActive = true
		c.mu.Unlock()

		data, err := c.store.GetDataAndWatch(ctx, c.cfg.Key)
		if err != nil {
			c.proc.Abort("unexpected coordination failure while reading incumbent leader", err)

			return false
		}

		if data == nil {
			// The key vanished between the failed create and the read;
			// no incumbent to wait for, race again.
			c.mu.Lock()
			c.hasActive = false
			c.mu.Unlock()

			continue
		}

		if !c.observeIncumbent(ctx, data) {
			return false
		}

		c.transitionState(c.State(), StateWaiting)

		c.mu.Lock()
		for c.hasActive && !c.stopping() {
			// Predicate loop: wakeups may be spurious or already stale.
			c.cond.Wait()
		}
		stopped := c.stopping()
		c.mu.Unlock()

		if stopped {
			c.transitionState(c.State(), StateStopped)
			c.logger.Info("giving up on election, shutdown requested", "identity", c.id.String())

			return false
		}

		// The incumbent disappeared; loop back and race for the key.
	}
}

// observeIncumbent decodes the registered identity and hastens removal of a
// leftover registration from an earlier incarnation of this process.
//
// A registration that matches this candidate's host and port but carries a
// different start timestamp cannot belong to a live competitor; it is the
// ephemeral remnant of a previous run whose session has not expired yet.
// It is deleted without inferring anything further about its session state.
//
// Returns false only when a fatal store failure was escalated and the
// election loop must stop.
func (c *Coordinator) observeIncumbent(ctx context.Context, data []byte) bool {
	incumbent, err := types.DecodeIdentity(data)
	if err != nil {
		// Unreadable value: treat as a distinct leader and wait for the
		// key to disappear.
		c.logger.Warn("failed to decode incumbent leader identity", "error", err)
		c.status.SetStatus("another leader is active; waiting to become the next active leader")

		return true
	}

	if incumbent.SameEndpoint(c.id) && !incumbent.Equal(c.id) {
		msg := "current leader key has this candidate's address, candidate was restarted? Waiting on key to expire"
		c.logger.Info(msg, "incumbent", incumbent.String(), "identity", c.id.String())
		c.status.SetStatus(msg)

		if err := c.store.DeleteNode(ctx, c.cfg.Key); err != nil {
			c.proc.Abort("unexpected coordination failure while deleting stale leader key", err)

			return false
		}

		c.metrics.RecordStaleCleanup()

		return true
	}

	msg := "another leader is active; waiting to become the next active leader"
	c.logger.Info(msg, "incumbent", incumbent.String())
	c.status.SetStatus(msg)

	return true
}

// HasActiveLeader reports whether the election key currently exists.
//
// This is an advisory point check: communication failures are logged and
// reported as "no known active leader", never escalated.
//
// Parameters:
//   - ctx: Context for the store call
//
// Returns:
//   - bool: true if an active leader is registered
func (c *Coordinator) HasActiveLeader(ctx context.Context) bool {
	exists, err := c.store.CheckExists(ctx, c.cfg.Key)
	if err != nil {
		c.logger.Info("unexpected coordination failure while checking for active leader", "error", err)

		return false
	}

	return exists
}

// Resign removes this candidate's registration on shutdown, best-effort.
//
// The key is deleted only if it still holds this exact identity, so a
// successor's registration is never disturbed. All failures are logged and
// swallowed; the process is exiting regardless. Resign also releases any
// goroutine blocked in BecomeActive.
//
// Parameters:
//   - ctx: Context for the store calls
func (c *Coordinator) Resign(ctx context.Context) {
	c.resigned.Store(true)

	c.mu.Lock()
	c.cond.Broadcast()
	c.mu.Unlock()

	defer c.cancel()

	data, err := c.store.GetDataAndWatch(ctx, c.cfg.Key)
	if err != nil {
		c.logger.Error("failed to read election key during resignation", "error", err)

		return
	}
	if data == nil {
		return
	}

	current, err := types.DecodeIdentity(data)
	if err != nil {
		c.logger.Error("failed to decode election key during resignation", "error", err)

		return
	}

	if !current.Equal(c.id) {
		// The key belongs to someone else; leave it alone.
		return
	}

	if err := c.store.DeleteNode(ctx, c.cfg.Key); err != nil {
		c.logger.Error("failed to delete own election key during resignation", "error", err)

		return
	}

	c.logger.Info("resigned from leadership", "identity", c.id.String())
}

// State returns the current election state.
//
// Returns:
//   - State: Current state
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

// Identity returns this candidate's identity.
//
// Returns:
//   - Identity: The identity registered under the election key on win
func (c *Coordinator) Identity() Identity {
	return c.id
}

// WaitState waits for the coordinator to reach the expected state within
// the timeout period.
//
// Useful for tests and synchronization scenarios. The returned channel
// receives exactly one value and is then closed:
//   - nil if the expected state is reached within the timeout
//   - context.DeadlineExceeded if the timeout expires first
//
// Parameters:
//   - expectedState: The state to wait for
//   - timeout: Maximum duration to wait for the state
//
// Returns:
//   - <-chan error: A channel that receives the result
//
// Example:
//
//	errCh := coord.WaitState(hbase.StateWaiting, 5*time.Second)
//	if err := <-errCh; err != nil {
//	    t.Fatalf("never reached Waiting: %v", err)
//	}
func (c *Coordinator) WaitState(expectedState State, timeout time.Duration) <-chan error {
	ch := make(chan error, 1) // Buffered to prevent goroutine leak

	go func() {
		defer close(ch)

		if c.State() == expectedState {
			ch <- nil
			return
		}

		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()

		timeoutTimer := time.NewTimer(timeout)
		defer timeoutTimer.Stop()

		for {
			select {
			case <-ticker.C:
				if c.State() == expectedState {
					ch <- nil
					return
				}
			case <-timeoutTimer.C:
				ch <- context.DeadlineExceeded
				return
			}
		}
	}()

	return ch
}

// stopping reports whether shutdown was requested, either by the hosting
// process or by a local Resign call.
func (c *Coordinator) stopping() bool {
	return c.resigned.Load() || c.proc.IsStopping()
}

// transitionState transitions to a new state and triggers hooks.
func (c *Coordinator) transitionState(from, to State) {
	if from == to {
		return
	}

	if !c.isValidTransition(from, to) {
		c.logger.Error("invalid state transition attempted",
			"from", from.String(),
			"to", to.String(),
		)

		return
	}

	c.state.Store(int32(to)) //nolint:gosec // State values are controlled enum

	c.logger.Debug("state transition",
		"from", from.String(),
		"to", to.String(),
		"identity", c.id.String(),
	)

	if c.hooks.OnStateChanged != nil {
		// Run hook in background to avoid blocking the election loop
		go func() {
			if err := c.hooks.OnStateChanged(c.ctx, from, to); err != nil {
				c.logger.Error("state change hook error", "from", from, "to", to, "error", err)
			}
		}()
	}

	c.metrics.RecordStateTransition(from, to)
}

// isValidTransition validates that a state transition is allowed.
//
// Returns:
//   - bool: true if transition is valid, false otherwise
func (c *Coordinator) isValidTransition(from, to State) bool {
	validTransitions := map[State][]State{
		StateIdle:       {StateAttempting},
		StateAttempting: {StateElected, StateObserving},
		StateObserving:  {StateWaiting, StateAttempting},
		StateWaiting:    {StateAttempting, StateStopped},
		StateElected:    {}, // Terminal
		StateStopped:    {}, // Terminal
	}

	allowedStates, exists := validTransitions[from]
	if !exists {
		return false
	}

	for _, allowed := range allowedStates {
		if allowed == to {
			return true
		}
	}

	return false
}

// runElectedHook triggers the OnElected hook in the background.
func (c *Coordinator) runElectedHook() {
	if c.hooks.OnElected == nil {
		return
	}

	go func() {
		if err := c.hooks.OnElected(c.ctx, c.id); err != nil {
			c.logger.Error("elected hook error", "error", err)
		}
	}()
}
