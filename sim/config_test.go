package sim_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/polity-sim/coordinator/core/phase"
	"github.com/polity-sim/coordinator/sim"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := sim.DefaultConfig()

	if cfg.TickInterval.Std() != 50*time.Millisecond {
		t.Errorf("got tick interval %v, want 50ms", cfg.TickInterval)
	}
	if cfg.TickBudget != 0 {
		t.Errorf("got tick budget %d, want 0 (unlimited)", cfg.TickBudget)
	}
	if cfg.Observer != "slog" {
		t.Errorf("got observer %q, want %q", cfg.Observer, "slog")
	}
	if cfg.Session.InitialPhase != phase.PreElection {
		t.Errorf("got session phase %q, want %q", cfg.Session.InitialPhase, phase.PreElection)
	}
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeConfig(t, "sim.json", `{
		"tick_budget": 100,
		"observer": "noop",
		"session": {
			"initial_phase": "election",
			"initial_speed": 2.0
		}
	}`)

	cfg, err := sim.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.TickBudget != 100 {
		t.Errorf("got tick budget %d, want 100", cfg.TickBudget)
	}
	if cfg.Observer != "noop" {
		t.Errorf("got observer %q, want %q", cfg.Observer, "noop")
	}
	if cfg.Session.InitialPhase != phase.Election {
		t.Errorf("got session phase %q, want %q", cfg.Session.InitialPhase, phase.Election)
	}
	if cfg.Session.InitialSpeed != 2.0 {
		t.Errorf("got session speed %v, want 2.0", cfg.Session.InitialSpeed)
	}
	// Unset fields keep their defaults.
	if cfg.TickInterval.Std() != 50*time.Millisecond {
		t.Errorf("got tick interval %v, want 50ms default", cfg.TickInterval)
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, "sim.yaml", `
tick_interval: 20ms
tick_budget: 10
session:
  initial_phase: governance
  start_paused: true
`)

	cfg, err := sim.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.TickInterval.Std() != 20*time.Millisecond {
		t.Errorf("got tick interval %v, want 20ms", cfg.TickInterval)
	}
	if cfg.TickBudget != 10 {
		t.Errorf("got tick budget %d, want 10", cfg.TickBudget)
	}
	if cfg.Session.InitialPhase != phase.Governance {
		t.Errorf("got session phase %q, want %q", cfg.Session.InitialPhase, phase.Governance)
	}
	if !cfg.Session.StartPaused {
		t.Error("session should start paused")
	}
}

func TestLoadConfig_InvalidPhase(t *testing.T) {
	path := writeConfig(t, "sim.json", `{"session": {"initial_phase": "recount"}}`)

	if _, err := sim.LoadConfig(path); err == nil {
		t.Error("LoadConfig should reject an unknown phase")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := sim.LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("LoadConfig should fail for a missing file")
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := sim.DefaultConfig()
	source := sim.Config{
		TickInterval: sim.Duration(10 * time.Millisecond),
		TickBudget:   7,
	}

	cfg.Merge(&source)

	if cfg.TickInterval.Std() != 10*time.Millisecond {
		t.Errorf("got tick interval %v, want 10ms", cfg.TickInterval)
	}
	if cfg.TickBudget != 7 {
		t.Errorf("got tick budget %d, want 7", cfg.TickBudget)
	}
	if cfg.Observer != "slog" {
		t.Errorf("merge overwrote observer: got %q, want %q", cfg.Observer, "slog")
	}
	if cfg.Session.InitialPhase != phase.PreElection {
		t.Errorf("merge overwrote session phase: got %q", cfg.Session.InitialPhase)
	}
}
