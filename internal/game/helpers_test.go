package game

import (
	"math"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSimulation(t *testing.T) (*Simulation, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	sim, err := NewSimulation(Config{Seed: 99, Now: clock.Now})
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	return sim, clock
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func hasNotification(st State, substr string) bool {
	for _, n := range st.Notifications {
		if strings.Contains(n.Message, substr) {
			return true
		}
	}
	return false
}
