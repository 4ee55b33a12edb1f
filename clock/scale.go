// Package clock holds the ambient simulation rate consumed by the rest of
// the application. Session state writes it; the frame loop reads it.
package clock

import "sync"

// Scale is the effective time multiplier. It is 0 while the session is
// paused and equals the session speed otherwise; the session state keeps it
// synchronized on every mutation.
type Scale struct {
	mu    sync.RWMutex
	value float64
}

// NewScale creates a Scale with the given initial value.
func NewScale(value float64) *Scale {
	return &Scale{value: value}
}

// SetScale stores a new multiplier.
func (s *Scale) SetScale(value float64) {
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()
}

// Value returns the current multiplier.
func (s *Scale) Value() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}
