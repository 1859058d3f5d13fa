package hbase

import "fmt"

// DefaultElectionKey is the well-known path of the active-leader key when
// no key is configured.
const DefaultElectionKey = "master"

// Config holds the coordinator configuration.
//
// Zero values are filled in by SetDefaults, so an empty Config is valid:
//
//	coord, err := hbase.NewCoordinator(&hbase.Config{}, store, id, proc)
type Config struct {
	// Key is the election key path within the coordination store. The
	// existence of this key means an active leader is registered.
	//
	// Default: DefaultElectionKey.
	Key string
}

// SetDefaults fills in missing configuration values with defaults.
//
// Parameters:
//   - cfg: Configuration to update in place
func SetDefaults(cfg *Config) {
	if cfg.Key == "" {
		cfg.Key = DefaultElectionKey
	}
}

// Validate checks the configuration for correctness.
//
// Returns:
//   - error: Description of the first invalid field, nil if valid
func (c *Config) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("%w: election key must not be empty", ErrInvalidConfig)
	}

	return nil
}
