package natskv

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/nicktelford/hbase/internal/kvutil"
	"github.com/nicktelford/hbase/internal/logger"
	"github.com/nicktelford/hbase/internal/natsutil"
	"github.com/nicktelford/hbase/types"
)

// Store implements types.CoordinationStore on a JetStream KV bucket.
//
// All methods are safe for concurrent use. Watchers started by
// WatchAndCheckExists and GetDataAndWatch live until Close.
type Store struct {
	kv  jetstream.KeyValue
	log types.Logger

	listMu    sync.RWMutex
	listeners []types.WatchListener

	watchMu  sync.Mutex
	watchers *xsync.Map[string, jetstream.KeyWatcher]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed atomic.Bool
}

// Compile-time assertion that Store implements CoordinationStore.
var _ types.CoordinationStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for watcher diagnostics.
//
// Parameters:
//   - log: Logger implementation
//
// Returns:
//   - Option: Functional option for NewStore
func WithLogger(log types.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates a coordination store backed by the given KV bucket.
//
// Parameters:
//   - kv: JetStream KV bucket holding the election key
//   - opts: Optional configuration
//
// Returns:
//   - *Store: New store instance
//
// Example:
//
//	kv, _ := js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
//	    Bucket: "election",
//	    TTL:    30 * time.Second,
//	})
//	store := natskv.NewStore(kv)
func NewStore(kv jetstream.KeyValue, opts ...Option) *Store {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Store{
		kv:       kv,
		log:      logger.NewNop(),
		watchers: xsync.NewMap[string, jetstream.KeyWatcher](),
		ctx:      ctx,
		cancel:   cancel,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewStoreFromConn creates a store from a plain NATS connection, creating
// or opening the named KV bucket on the way.
//
// The bucket is created with history depth 1 and the given TTL; a TTL of
// zero disables expiry, which leaves cleanup entirely to explicit deletes.
//
// Parameters:
//   - ctx: Context for bucket creation
//   - conn: NATS connection
//   - bucket: KV bucket name
//   - ttl: Bucket entry TTL (0 for none)
//   - opts: Optional configuration
//
// Returns:
//   - *Store: New store instance
//   - error: JetStream or bucket creation error
func NewStoreFromConn(ctx context.Context, conn *nats.Conn, bucket string, ttl time.Duration, opts ...Option) (*Store, error) {
	if conn == nil {
		return nil, errors.New("NATS connection is required")
	}

	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to create jetstream context: %w", err)
	}

	cfg := jetstream.KeyValueConfig{
		Bucket:  bucket,
		History: 1,
	}
	if ttl > 0 {
		cfg.TTL = ttl
	}

	const maxRetries = 5
	kv, err := kvutil.EnsureKVBucketWithRetry(ctx, js, cfg, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to create/open KV bucket %s: %w", bucket, err)
	}

	return NewStore(kv, opts...), nil
}

// Subscribe registers a listener for change notifications on watched paths.
//
// Listeners registered after a watcher has already delivered events only
// see subsequent events.
//
// Parameters:
//   - l: Listener to notify
func (s *Store) Subscribe(l types.WatchListener) {
	s.listMu.Lock()
	defer s.listMu.Unlock()
	s.listeners = append(s.listeners, l)
}

// CreateIfAbsent atomically creates the path with the given value.
func (s *Store) CreateIfAbsent(ctx context.Context, path string, value []byte) (bool, error) {
	if s.closed.Load() {
		return false, types.ErrStoreClosed
	}

	_, err := s.kv.Create(ctx, path, value)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return false, nil
		}

		return false, s.wrapErr("failed to create key", err)
	}

	return true, nil
}

// WatchAndCheckExists installs the path watcher and checks existence.
//
// The watcher is persistent, so every change after this call is delivered
// to subscribed listeners; the existence read happens after the watcher is
// active, closing the check-then-watch gap.
func (s *Store) WatchAndCheckExists(ctx context.Context, path string) (bool, error) {
	if err := s.ensureWatcher(path); err != nil {
		return false, err
	}

	return s.CheckExists(ctx, path)
}

// GetDataAndWatch installs the path watcher and reads the current value.
//
// Returns nil bytes with a nil error when the path does not exist.
func (s *Store) GetDataAndWatch(ctx context.Context, path string) ([]byte, error) {
	if err := s.ensureWatcher(path); err != nil {
		return nil, err
	}

	entry, err := s.kv.Get(ctx, path)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, nil
		}

		return nil, s.wrapErr("failed to get key", err)
	}

	return entry.Value(), nil
}

// DeleteNode removes the path. Deleting an absent path is a no-op.
func (s *Store) DeleteNode(ctx context.Context, path string) error {
	if s.closed.Load() {
		return types.ErrStoreClosed
	}

	err := s.kv.Delete(ctx, path)
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return s.wrapErr("failed to delete key", err)
	}

	return nil
}

// CheckExists is a non-watching point check of path existence.
func (s *Store) CheckExists(ctx context.Context, path string) (bool, error) {
	if s.closed.Load() {
		return false, types.ErrStoreClosed
	}

	_, err := s.kv.Get(ctx, path)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return false, nil
		}

		return false, s.wrapErr("failed to get key", err)
	}

	return true, nil
}

// Close stops all watchers and releases resources.
//
// Subsequent store operations return types.ErrStoreClosed.
func (s *Store) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}

	s.cancel()

	s.watchers.Range(func(path string, w jetstream.KeyWatcher) bool {
		if err := w.Stop(); err != nil {
			s.log.Debug("failed to stop watcher", "path", path, "error", err)
		}

		return true
	})

	s.wg.Wait()
}

// ensureWatcher starts the persistent watcher for path if not yet running.
func (s *Store) ensureWatcher(path string) error {
	if s.closed.Load() {
		return types.ErrStoreClosed
	}

	if _, ok := s.watchers.Load(path); ok {
		return nil
	}

	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	// Re-check under the lock, another caller may have won the race.
	if _, ok := s.watchers.Load(path); ok {
		return nil
	}

	// UpdatesOnly skips the initial value replay; the paired read supplies
	// current state, the watcher only needs to deliver changes after it.
	w, err := s.kv.Watch(s.ctx, path, jetstream.UpdatesOnly())
	if err != nil {
		return s.wrapErr("failed to watch key", err)
	}

	s.watchers.Store(path, w)

	s.wg.Add(1)
	go s.dispatch(path, w)

	return nil
}

// dispatch delivers watcher updates for one path to all listeners.
//
// Runs as a single goroutine per path, so listeners observe single-dispatch
// delivery per path with no cross-path ordering guarantee.
func (s *Store) dispatch(path string, w jetstream.KeyWatcher) {
	defer s.wg.Done()

	for entry := range w.Updates() {
		if entry == nil {
			// End-of-replay marker, nothing to deliver.
			continue
		}

		switch entry.Operation() {
		case jetstream.KeyValuePut:
			s.log.Debug("key created", "path", path, "revision", entry.Revision())
			s.notify(func(l types.WatchListener) { l.OnCreated(path) })
		case jetstream.KeyValueDelete, jetstream.KeyValuePurge:
			s.log.Debug("key deleted", "path", path, "revision", entry.Revision())
			s.notify(func(l types.WatchListener) { l.OnDeleted(path) })
		}
	}
}

// notify invokes fn for every subscribed listener.
func (s *Store) notify(fn func(types.WatchListener)) {
	s.listMu.RLock()
	listeners := make([]types.WatchListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.listMu.RUnlock()

	for _, l := range listeners {
		fn(l)
	}
}

// wrapErr adds context and tags connectivity failures with ErrConnectivity.
func (s *Store) wrapErr(msg string, err error) error {
	if natsutil.IsConnectivityError(err) && !errors.Is(err, types.ErrConnectivity) {
		return fmt.Errorf("%s: %w: %w", msg, types.ErrConnectivity, err)
	}

	return fmt.Errorf("%s: %w", msg, err)
}
