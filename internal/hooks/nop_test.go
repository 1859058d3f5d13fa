package hooks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicktelford/hbase/types"
)

func TestNewNop(t *testing.T) {
	hooks := NewNop()

	require.NotNil(t, hooks.OnElected)
	require.NotNil(t, hooks.OnStateChanged)
}

func TestNopHooks_OnElected(t *testing.T) {
	hooks := NewNop()
	ctx := context.Background()

	id := types.Identity{Host: "node.example.com", Port: 16000, StartedAt: 100}
	err := hooks.OnElected(ctx, id)
	require.NoError(t, err)
}

func TestNopHooks_OnStateChanged(t *testing.T) {
	hooks := NewNop()
	ctx := context.Background()

	err := hooks.OnStateChanged(ctx, types.StateIdle, types.StateAttempting)
	require.NoError(t, err)
}
