package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/polity-sim/coordinator/core/phase"
	"github.com/polity-sim/coordinator/observability"
	"github.com/polity-sim/coordinator/session"
	"github.com/polity-sim/coordinator/sim"
)

func main() {
	var (
		configFile   = flag.String("config", "", "Path to engine config file (JSON or YAML)")
		phases       = flag.String("phases", "election,coalition_formation,governance", "Comma-separated phase script")
		speed        = flag.Float64("speed", 0, "Speed multiplier to request (0 keeps the configured speed)")
		pauseToggles = flag.Int("pause-toggles", 0, "Number of pause toggles to script after the phase sequence")
		ticks        = flag.Int("ticks", 20, "Tick budget for the run; 0 runs until interrupted")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	observability.RegisterObserver("slog", observability.NewSlogObserver(logger))

	cfg := sim.DefaultConfig()
	if *configFile != "" {
		loaded, err := sim.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}
	cfg.TickBudget = *ticks

	engine, err := sim.New(&cfg)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	session.Install(engine.State())

	if err := scriptRun(engine, *phases, *speed, *pauseToggles); err != nil {
		log.Fatalf("Failed to script run: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := engine.Run(ctx)
	if err != nil && ctx.Err() == nil {
		log.Fatalf("Engine run failed: %v", err)
	}

	state := engine.State()
	fmt.Printf("Session:   %s\n", state.ID())
	fmt.Printf("Phase:     %s\n", state.Phase())
	fmt.Printf("Speed:     %.2f\n", state.Speed())
	fmt.Printf("Paused:    %v\n", state.Paused())
	fmt.Printf("Ticks:     %d\n", result.Ticks)
	fmt.Printf("Simulated: %s\n", result.Simulated)
}

// scriptRun queues the requested phase sequence, speed change, and pause
// toggles for execution on the engine's first ticks.
func scriptRun(engine *sim.Engine, phases string, speed float64, pauseToggles int) error {
	for _, raw := range strings.Split(phases, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		p, err := phase.Parse(raw)
		if err != nil {
			return err
		}
		if err := engine.Do(func(ctx context.Context, s *session.State) {
			s.SetPhase(ctx, p)
		}); err != nil {
			return err
		}
	}

	if speed != 0 {
		if err := engine.Do(func(ctx context.Context, s *session.State) {
			s.SetSpeed(ctx, speed)
		}); err != nil {
			return err
		}
	}

	for i := 0; i < pauseToggles; i++ {
		if err := engine.Do(func(ctx context.Context, s *session.State) {
			s.TogglePause(ctx)
		}); err != nil {
			return err
		}
	}

	return nil
}
