package session

import "github.com/polity-sim/coordinator/core/phase"

// Config holds session-state initialization parameters.
type Config struct {
	InitialPhase phase.Phase `json:"initial_phase,omitempty" yaml:"initial_phase,omitempty"`
	InitialSpeed float64     `json:"initial_speed,omitempty" yaml:"initial_speed,omitempty"`
	StartPaused  bool        `json:"start_paused,omitempty" yaml:"start_paused,omitempty"`
	Observer     string      `json:"observer,omitempty" yaml:"observer,omitempty"`
}

// DefaultConfig returns the default session configuration: a fresh session
// starts pre-election at normal speed, unpaused.
func DefaultConfig() Config {
	return Config{
		InitialPhase: phase.PreElection,
		InitialSpeed: 1.0,
		Observer:     "noop",
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.InitialPhase != "" {
		c.InitialPhase = source.InitialPhase
	}
	if source.InitialSpeed != 0 {
		c.InitialSpeed = source.InitialSpeed
	}
	if source.StartPaused {
		c.StartPaused = true
	}
	if source.Observer != "" {
		c.Observer = source.Observer
	}
}
