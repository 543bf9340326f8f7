package mailqueue

import "time"

// Config holds configuration for the mail dispatch queue.
type Config struct {
	// IdleTimeout bounds how long the worker waits for a task before
	// looping again. Purely a liveness bound, not an error.
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	// AttemptTimeout bounds a single delivery attempt end to end.
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:    30 * time.Second,
		AttemptTimeout: 10 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = def.IdleTimeout
	}
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = def.AttemptTimeout
	}
	return c
}
