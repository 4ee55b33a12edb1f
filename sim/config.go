package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/polity-sim/coordinator/session"
)

const (
	defaultTickInterval  = 50 * time.Millisecond
	defaultCommandBuffer = 64
)

// Duration wraps time.Duration so config files can use Go duration strings
// ("50ms") in both JSON and YAML. Bare integers are read as nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case float64:
		*d = Duration(time.Duration(v))
		return nil
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration: %v", v)
	}
}

func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		var n int64
		if err := unmarshal(&n); err != nil {
			return err
		}
		*d = Duration(n)
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Config holds initialization parameters for the engine and its subsystems.
type Config struct {
	TickInterval  Duration       `json:"tick_interval,omitempty" yaml:"tick_interval,omitempty"`
	TickBudget    int            `json:"tick_budget,omitempty" yaml:"tick_budget,omitempty"`
	CommandBuffer int            `json:"command_buffer,omitempty" yaml:"command_buffer,omitempty"`
	Observer      string         `json:"observer,omitempty" yaml:"observer,omitempty"`
	Session       session.Config `json:"session" yaml:"session"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		TickInterval:  Duration(defaultTickInterval),
		CommandBuffer: defaultCommandBuffer,
		Observer:      "slog",
		Session:       session.DefaultConfig(),
	}
}

// Merge applies non-zero values from source into c, delegating to the
// session section's Merge method.
func (c *Config) Merge(source *Config) {
	c.Session.Merge(&source.Session)

	if source.TickInterval > 0 {
		c.TickInterval = source.TickInterval
	}
	if source.TickBudget > 0 {
		c.TickBudget = source.TickBudget
	}
	if source.CommandBuffer > 0 {
		c.CommandBuffer = source.CommandBuffer
	}
	if source.Observer != "" {
		c.Observer = source.Observer
	}
}

// LoadConfig reads a config file, merges it with defaults, and returns the
// resulting Config. Files ending in .yaml or .yml are parsed as YAML,
// everything else as JSON.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	switch filepath.Ext(filename) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
