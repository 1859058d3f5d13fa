// Package hooks provides default no-op lifecycle hook implementations.
package hooks

import (
	"context"

	"github.com/nicktelford/hbase/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the codebase.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, types.Identity) error           = (*NopHooks)(nil).OnElected
	_ func(context.Context, types.State, types.State) error = (*NopHooks)(nil).OnStateChanged
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnElected:      h.OnElected,
		OnStateChanged: h.OnStateChanged,
	}
}

// OnElected is a no-op implementation.
func (h *NopHooks) OnElected(_ context.Context, _ types.Identity) error {
	return nil
}

// OnStateChanged is a no-op implementation.
func (h *NopHooks) OnStateChanged(_ context.Context, _, _ types.State) error {
	return nil
}
