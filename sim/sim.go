// Package sim implements the frame loop that owns one simulation session:
// the session state, the ambient time scale, and the tick cadence that
// drives them.
//
// The engine initializes from configuration via New, creating the state and
// time scale internally. Functional options allow test overrides of any
// collaborator.
//
//	e, err := sim.New(&cfg)
//	result, err := e.Run(ctx)
//
// All session mutation flows through Do, which queues work for the loop
// goroutine — the single logical update thread.
package sim

import (
	"context"
	"time"

	"github.com/polity-sim/coordinator/clock"
	"github.com/polity-sim/coordinator/observability"
	"github.com/polity-sim/coordinator/session"
)

// Result holds the outcome of an engine Run invocation.
type Result struct {
	Ticks     int           // Frames executed.
	Simulated time.Duration // Simulated time advanced, scaled by the clock.
}

// Command is a unit of session mutation executed on the loop goroutine.
type Command func(ctx context.Context, state *session.State)

// Option configures an Engine after config-driven initialization.
// Applied by New after cold start; overrides replace config-created defaults.
type Option func(*Engine)

// WithState overrides the config-created session state. The caller is
// responsible for wiring the state to a time scale.
func WithState(s *session.State) Option {
	return func(e *Engine) { e.state = s }
}

// WithObserver overrides the config-resolved observer.
func WithObserver(o observability.Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithScale overrides the config-created time scale.
func WithScale(s *clock.Scale) Option {
	return func(e *Engine) { e.scale = s }
}

// Engine is the owning loop for one session.
type Engine struct {
	state    *session.State
	scale    *clock.Scale
	observer observability.Observer

	tickInterval time.Duration
	tickBudget   int
	commands     chan Command
}

// New creates an Engine from configuration. The session state is created
// deactivated; the first tick of Run activates it, so initialization is
// fully resolved one scheduling step after construction.
func New(cfg *Config, opts ...Option) (*Engine, error) {
	observer, err := observability.GetObserver(cfg.Observer)
	if err != nil {
		return nil, err
	}

	scale := clock.NewScale(1.0)

	state, err := session.New(&cfg.Session,
		session.WithObserver(observer),
		session.WithTimeScale(scale),
	)
	if err != nil {
		return nil, err
	}

	buffer := cfg.CommandBuffer
	if buffer <= 0 {
		buffer = defaultCommandBuffer
	}

	interval := cfg.TickInterval.Std()
	if interval <= 0 {
		interval = defaultTickInterval
	}

	e := &Engine{
		state:        state,
		scale:        scale,
		observer:     observer,
		tickInterval: interval,
		tickBudget:   cfg.TickBudget,
		commands:     make(chan Command, buffer),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// State returns the engine-owned session state.
func (e *Engine) State() *session.State {
	return e.state
}

// Scale returns the engine-owned time scale.
func (e *Engine) Scale() *clock.Scale {
	return e.scale
}

// Do queues a command for execution on the next tick. Commands run in
// submission order, after activation, on the loop goroutine. Returns
// ErrCommandQueueFull when the buffer is exhausted.
func (e *Engine) Do(cmd Command) error {
	if cmd == nil {
		return nil
	}
	select {
	case e.commands <- cmd:
		return nil
	default:
		return ErrCommandQueueFull
	}
}

// Run drives the frame loop until the context ends or a non-zero tick
// budget is exhausted. Each tick activates a pending state, executes queued
// commands, then advances simulated time by the tick interval multiplied by
// the current scale. A budget run completes with a nil error; cancellation
// returns the context error alongside the partial result.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	e.observer.OnEvent(ctx, observability.Event{
		Type:      EventRunStart,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "sim.Run",
		Data: map[string]any{
			"session":       e.state.ID(),
			"tick_interval": e.tickInterval.String(),
			"tick_budget":   e.tickBudget,
		},
	})

	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	result := &Result{}

	for {
		select {
		case <-ctx.Done():
			e.emitStop(ctx, result, "cancelled")
			return result, ctx.Err()
		case <-ticker.C:
			e.state.Activate(ctx)
			e.drainCommands(ctx)

			advance := time.Duration(float64(e.tickInterval) * e.scale.Value())
			result.Simulated += advance
			result.Ticks++

			e.observer.OnEvent(ctx, observability.Event{
				Type:      EventTick,
				Level:     observability.LevelVerbose,
				Timestamp: time.Now(),
				Source:    "sim.Run",
				Data: map[string]any{
					"tick":      result.Ticks,
					"scale":     e.scale.Value(),
					"simulated": result.Simulated.String(),
				},
			})

			if e.tickBudget > 0 && result.Ticks >= e.tickBudget {
				e.emitStop(ctx, result, "budget")
				return result, nil
			}
		}
	}
}

func (e *Engine) drainCommands(ctx context.Context) {
	for {
		select {
		case cmd := <-e.commands:
			cmd(ctx, e.state)
		default:
			return
		}
	}
}

func (e *Engine) emitStop(ctx context.Context, result *Result, reason string) {
	e.observer.OnEvent(ctx, observability.Event{
		Type:      EventRunStop,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "sim.Run",
		Data: map[string]any{
			"session":   e.state.ID(),
			"reason":    reason,
			"ticks":     result.Ticks,
			"simulated": result.Simulated.String(),
		},
	})
}
