package observability

import (
	"context"
	"sync"
)

// CaptureObserver retains the most recent events in memory. The console uses
// it to render a live event log; tests use it to assert on emitted events.
// A Limit of 0 means unbounded retention.
type CaptureObserver struct {
	Limit int

	mu     sync.Mutex
	events []Event
}

// NewCaptureObserver creates a CaptureObserver keeping at most limit events.
func NewCaptureObserver(limit int) *CaptureObserver {
	return &CaptureObserver{Limit: limit}
}

func (c *CaptureObserver) OnEvent(ctx context.Context, event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.events = append(c.events, event)
	if c.Limit > 0 && len(c.events) > c.Limit {
		c.events = c.events[len(c.events)-c.Limit:]
	}
}

// Events returns a defensive copy of the retained events, oldest first.
func (c *CaptureObserver) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	copied := make([]Event, len(c.events))
	copy(copied, c.events)
	return copied
}

// Reset discards all retained events.
func (c *CaptureObserver) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}
