package hbase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig_SetDefaults(t *testing.T) {
	t.Run("fills in the default election key", func(t *testing.T) {
		cfg := Config{}
		SetDefaults(&cfg)
		require.Equal(t, DefaultElectionKey, cfg.Key)
	})

	t.Run("preserves an explicit key", func(t *testing.T) {
		cfg := Config{Key: "controller"}
		SetDefaults(&cfg)
		require.Equal(t, "controller", cfg.Key)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("accepts a defaulted config", func(t *testing.T) {
		cfg := Config{}
		SetDefaults(&cfg)
		require.NoError(t, cfg.Validate())
	})

	t.Run("rejects an empty key", func(t *testing.T) {
		cfg := Config{}
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})
}
