package clock_test

import (
	"sync"
	"testing"

	"github.com/polity-sim/coordinator/clock"
)

func TestScale_InitialValue(t *testing.T) {
	s := clock.NewScale(1.5)

	if got := s.Value(); got != 1.5 {
		t.Errorf("got %v, want 1.5", got)
	}
}

func TestScale_SetScale(t *testing.T) {
	s := clock.NewScale(1.0)

	s.SetScale(0)
	if got := s.Value(); got != 0 {
		t.Errorf("got %v, want 0", got)
	}

	s.SetScale(2.5)
	if got := s.Value(); got != 2.5 {
		t.Errorf("got %v, want 2.5", got)
	}
}

func TestScale_Concurrent(t *testing.T) {
	s := clock.NewScale(1.0)
	const n = 100

	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			s.SetScale(2.0)
		}()
		go func() {
			defer wg.Done()
			_ = s.Value()
		}()
	}
	wg.Wait()
}
