package command

import "time"

// ChannelConfig holds the configuration for the channel transport.
// Designed for environment-based configuration using popular env parsing
// libraries.
type ChannelConfig struct {
	BufferSize      int           `env:"COMMAND_BUFFER_SIZE" envDefault:"100"`
	Workers         int           `env:"COMMAND_WORKERS" envDefault:"1"`
	ShutdownTimeout time.Duration `env:"COMMAND_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// DefaultChannelConfig returns sensible defaults for production use.
func DefaultChannelConfig() ChannelConfig {
	return ChannelConfig{
		BufferSize:      100,
		Workers:         1,
		ShutdownTimeout: 30 * time.Second,
	}
}

// withDefaults fills zero or negative fields with defaults so that a
// partially filled config is still usable.
func (c ChannelConfig) withDefaults() ChannelConfig {
	def := DefaultChannelConfig()
	if c.BufferSize <= 0 {
		c.BufferSize = def.BufferSize
	}
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	return c
}
