package types

import "context"

// Hooks defines callbacks for coordinator lifecycle events.
//
// All hooks are optional and called asynchronously in background goroutines
// so they can never block the election state machine. Hook errors are
// logged and otherwise ignored.
//
// Best practices for hook implementation:
//   - Complete quickly (< 1 second recommended)
//   - Respect context cancellation
//   - Make hooks idempotent (a hook may fire more than once)
type Hooks struct {
	// OnElected is called once this candidate becomes the active leader.
	OnElected func(ctx context.Context, id Identity) error

	// OnStateChanged is called on every election state transition.
	OnStateChanged func(ctx context.Context, from, to State) error
}
