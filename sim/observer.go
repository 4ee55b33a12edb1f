package sim

import "github.com/polity-sim/coordinator/observability"

// Engine event types emitted during the frame loop.
const (
	EventRunStart observability.EventType = "sim.run.start"
	EventTick     observability.EventType = "sim.tick"
	EventRunStop  observability.EventType = "sim.run.stop"
)
