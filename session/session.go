// Package session holds the shared state of one political-simulation
// session: the current phase, the speed multiplier, and the pause flag.
// Mutators validate input, keep the external time scale synchronized, and
// broadcast changes through the state's dispatcher.
package session

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polity-sim/coordinator/core/phase"
	"github.com/polity-sim/coordinator/dispatch"
	"github.com/polity-sim/coordinator/observability"
)

// Speed multiplier bounds. Requested speeds are clamped, never rejected.
const (
	MinSpeed = 0.1
	MaxSpeed = 10.0
)

// Notification channels published by a State on its dispatcher.
// Payload types: PhaseChanged carries phase.Phase, SpeedChanged carries the
// clamped float64, PauseChanged carries the new bool.
const (
	PhaseChanged dispatch.Channel = "session.phase"
	SpeedChanged dispatch.Channel = "session.speed"
	PauseChanged dispatch.Channel = "session.pause"
)

// TimeScale is the externally-owned effective rate the rest of the
// application consumes. The state writes it but does not own it.
type TimeScale interface {
	SetScale(value float64)
}

type noopScale struct{}

func (noopScale) SetScale(float64) {}

// Option configures a State after config-driven initialization.
type Option func(*State)

// WithDispatcher overrides the state-owned dispatcher.
func WithDispatcher(d *dispatch.Dispatcher) Option {
	return func(s *State) { s.dispatcher = d }
}

// WithObserver overrides the config-resolved observer.
func WithObserver(o observability.Observer) Option {
	return func(s *State) { s.observer = o }
}

// WithTimeScale connects the state to the external time-scale value.
func WithTimeScale(scale TimeScale) Option {
	return func(s *State) { s.scale = scale }
}

// State is the session state holder. Construction sets defaults only; the
// owning loop calls Activate on its next tick to push the initial time scale
// out, completing the two-phase lifecycle.
type State struct {
	id string

	mu        sync.RWMutex
	phase     phase.Phase
	speed     float64
	paused    bool
	activated bool

	dispatcher *dispatch.Dispatcher
	observer   observability.Observer
	scale      TimeScale
}

// New creates a State from configuration. The observer is resolved from the
// global observability registry by name; options applied afterwards can
// override any collaborator.
func New(cfg *Config, opts ...Option) (*State, error) {
	observer, err := observability.GetObserver(cfg.Observer)
	if err != nil {
		return nil, err
	}

	initial := cfg.InitialPhase
	if initial == "" {
		initial = phase.PreElection
	}

	s := &State{
		id:       uuid.Must(uuid.NewV7()).String(),
		phase:    initial,
		speed:    clampSpeed(cfg.InitialSpeed),
		paused:   cfg.StartPaused,
		observer: observer,
		scale:    noopScale{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.dispatcher == nil {
		s.dispatcher = dispatch.NewDispatcher(s.observer)
	}

	return s, nil
}

// ID returns the unique session identifier.
func (s *State) ID() string {
	return s.id
}

// Dispatcher returns the notification channel subscribers register on.
func (s *State) Dispatcher() *dispatch.Dispatcher {
	return s.dispatcher
}

// Phase returns the current session phase.
func (s *State) Phase() phase.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Speed returns the stored speed multiplier.
func (s *State) Speed() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speed
}

// Paused reports whether the session is paused.
func (s *State) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// Active reports whether Activate has completed.
func (s *State) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activated
}

// EffectiveScale returns the rate the rest of the system should observe:
// 0 while paused, the stored speed otherwise.
func (s *State) EffectiveScale() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.paused {
		return 0
	}
	return s.speed
}

// Activate completes construction: it pushes the initial effective scale to
// the external time-scale value and reports the session as live. The owning
// loop invokes it once on the scheduling tick after New. Subsequent calls
// are no-ops; Activate returns whether this call performed the activation.
func (s *State) Activate(ctx context.Context) bool {
	s.mu.Lock()
	if s.activated {
		s.mu.Unlock()
		return false
	}
	s.activated = true
	current, speed, paused := s.phase, s.speed, s.paused
	s.mu.Unlock()

	if paused {
		s.scale.SetScale(0)
	} else {
		s.scale.SetScale(speed)
	}

	s.observer.OnEvent(ctx, observability.Event{
		Type:      EventActivate,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "session.Activate",
		Data: map[string]any{
			"session": s.id,
			"phase":   current.String(),
			"speed":   speed,
			"paused":  paused,
		},
	})

	return true
}

// SetPhase stores a new phase and notifies phase subscribers. Requesting the
// phase already stored is a no-op: nothing is stored and nothing fires.
// Transitions between arbitrary phases are accepted; there is no legality
// graph.
func (s *State) SetPhase(ctx context.Context, requested phase.Phase) {
	s.mu.Lock()
	if requested == s.phase {
		s.mu.Unlock()
		return
	}
	previous := s.phase
	s.phase = requested
	s.mu.Unlock()

	s.observer.OnEvent(ctx, observability.Event{
		Type:      EventPhaseChange,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "session.SetPhase",
		Data: map[string]any{
			"session": s.id,
			"from":    previous.String(),
			"to":      requested.String(),
		},
	})

	s.dispatcher.Notify(PhaseChanged, requested)
}

// SetSpeed clamps the requested multiplier into [MinSpeed, MaxSpeed], stores
// it, and pushes it to the time scale unless paused. Speed subscribers are
// always notified with the clamped value, even when clamping altered the
// request or the value did not change.
func (s *State) SetSpeed(ctx context.Context, requested float64) {
	clamped := clampSpeed(requested)

	s.mu.Lock()
	s.speed = clamped
	paused := s.paused
	s.mu.Unlock()

	if !paused {
		s.scale.SetScale(clamped)
	}

	s.observer.OnEvent(ctx, observability.Event{
		Type:      EventSpeedChange,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "session.SetSpeed",
		Data: map[string]any{
			"session":   s.id,
			"requested": requested,
			"speed":     clamped,
		},
	})

	s.dispatcher.Notify(SpeedChanged, clamped)
}

// TogglePause flips the pause flag. Pausing forces the time scale to 0;
// resuming restores it to the stored speed. Pause subscribers are always
// notified with the new flag.
func (s *State) TogglePause(ctx context.Context) {
	s.mu.Lock()
	s.paused = !s.paused
	paused, speed := s.paused, s.speed
	s.mu.Unlock()

	if paused {
		s.scale.SetScale(0)
	} else {
		s.scale.SetScale(speed)
	}

	s.observer.OnEvent(ctx, observability.Event{
		Type:      EventPauseToggle,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "session.TogglePause",
		Data: map[string]any{
			"session": s.id,
			"paused":  paused,
		},
	})

	s.dispatcher.Notify(PauseChanged, paused)
}

func clampSpeed(requested float64) float64 {
	// NaN compares false against both bounds and would escape the clamp.
	if math.IsNaN(requested) {
		return MinSpeed
	}
	if requested < MinSpeed {
		return MinSpeed
	}
	if requested > MaxSpeed {
		return MaxSpeed
	}
	return requested
}
