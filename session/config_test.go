package session_test

import (
	"testing"

	"github.com/polity-sim/coordinator/core/phase"
	"github.com/polity-sim/coordinator/session"
)

func TestDefaultConfig(t *testing.T) {
	cfg := session.DefaultConfig()

	if cfg.InitialPhase != phase.PreElection {
		t.Errorf("got initial phase %q, want %q", cfg.InitialPhase, phase.PreElection)
	}
	if cfg.InitialSpeed != 1.0 {
		t.Errorf("got initial speed %v, want 1.0", cfg.InitialSpeed)
	}
	if cfg.StartPaused {
		t.Error("default config should not start paused")
	}
	if cfg.Observer != "noop" {
		t.Errorf("got observer %q, want %q", cfg.Observer, "noop")
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := session.DefaultConfig()
	source := session.Config{
		InitialPhase: phase.Governance,
		InitialSpeed: 2.0,
		StartPaused:  true,
	}

	cfg.Merge(&source)

	if cfg.InitialPhase != phase.Governance {
		t.Errorf("got initial phase %q, want %q", cfg.InitialPhase, phase.Governance)
	}
	if cfg.InitialSpeed != 2.0 {
		t.Errorf("got initial speed %v, want 2.0", cfg.InitialSpeed)
	}
	if !cfg.StartPaused {
		t.Error("merge should carry StartPaused")
	}
	if cfg.Observer != "noop" {
		t.Errorf("merge overwrote observer: got %q, want %q", cfg.Observer, "noop")
	}
}

func TestConfig_Merge_ZeroValuesIgnored(t *testing.T) {
	cfg := session.DefaultConfig()
	source := session.Config{}

	cfg.Merge(&source)

	if cfg.InitialPhase != phase.PreElection {
		t.Errorf("got initial phase %q, want %q", cfg.InitialPhase, phase.PreElection)
	}
	if cfg.InitialSpeed != 1.0 {
		t.Errorf("got initial speed %v, want 1.0", cfg.InitialSpeed)
	}
}
