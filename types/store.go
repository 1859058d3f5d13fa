package types

import "context"

// CoordinationStore is the client capability the election protocol requires
// from a quorum-backed coordination service.
//
// Implementations must provide linearizable create/read/delete on a flat
// path namespace plus change notifications. The watch-installing calls
// (WatchAndCheckExists, GetDataAndWatch) must guarantee that no change to
// the path can slip by unseen between the read and the watch becoming
// effective; how that is achieved (one-shot rearm or a persistent watcher)
// is up to the backend.
//
// Implementations can use:
//   - NATS KV (built-in, see the natskv package)
//   - External services (Consul, etcd, ZooKeeper)
type CoordinationStore interface {
	// CreateIfAbsent atomically creates the path with the given value.
	//
	// This is the sole election tie-breaker: among any number of racing
	// callers exactly one create succeeds.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - path: Path to create
	//   - value: Value to store
	//
	// Returns:
	//   - bool: true if created, false if the path already existed
	//   - error: Communication error (nil for the already-exists case)
	CreateIfAbsent(ctx context.Context, path string, value []byte) (bool, error)

	// WatchAndCheckExists tests existence and installs a watch as one
	// operation, so a change between check and watch cannot be missed.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - path: Path to check and watch
	//
	// Returns:
	//   - bool: true if the path exists
	//   - error: Communication error
	WatchAndCheckExists(ctx context.Context, path string) (bool, error)

	// GetDataAndWatch reads the current value and installs a watch with
	// the same no-lost-change guarantee as WatchAndCheckExists.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - path: Path to read and watch
	//
	// Returns:
	//   - []byte: Stored value, or nil if the path does not exist
	//   - error: Communication error (absence is not an error)
	GetDataAndWatch(ctx context.Context, path string) ([]byte, error)

	// DeleteNode removes the path. Deleting an absent path is a no-op.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - path: Path to delete
	//
	// Returns:
	//   - error: Communication error
	DeleteNode(ctx context.Context, path string) error

	// CheckExists is a non-watching point check of path existence.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - path: Path to check
	//
	// Returns:
	//   - bool: true if the path exists
	//   - error: Communication error
	CheckExists(ctx context.Context, path string) (bool, error)
}

// WatchListener receives change notifications from a CoordinationStore.
//
// Delivery is asynchronous and single-dispatch per path; there is no
// ordering guarantee across different paths. An event may already be stale
// by the time it is observed, so listeners must re-derive state from the
// store rather than trust the event kind.
type WatchListener interface {
	// OnCreated is invoked after the path came into existence.
	OnCreated(path string)

	// OnDeleted is invoked after the path was removed.
	OnDeleted(path string)
}
