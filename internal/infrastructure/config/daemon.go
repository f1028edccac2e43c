package config

import "time"

// DaemonConfig holds tick loop configuration
type DaemonConfig struct {
	// PID file location
	PIDFile string `mapstructure:"pid_file" validate:"required"`

	// TickInterval is the wall-clock pacing between ticks
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"required"`

	// MaxTicks stops the loop after this many ticks; 0 runs until signalled
	MaxTicks int `mapstructure:"max_ticks" validate:"min=0"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}

// SimulationConfig configures the in-process host
type SimulationConfig struct {
	// Scenario is a YAML scenario file; empty uses the built-in scenario
	Scenario string `mapstructure:"scenario"`
}
