package session

import "github.com/polity-sim/coordinator/observability"

// Session event types emitted on state mutations.
const (
	EventActivate    observability.EventType = "session.activate"
	EventPhaseChange observability.EventType = "session.phase.change"
	EventSpeedChange observability.EventType = "session.speed.change"
	EventPauseToggle observability.EventType = "session.pause.toggle"
)
