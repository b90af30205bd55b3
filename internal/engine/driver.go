// Package engine runs the simulation heartbeat: a fixed tick that integrates
// vitals and time, a faster pump that expires transient state, and an
// optional autosave.
package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/appengine-ltd/wildlands/internal/game"
	"github.com/appengine-ltd/wildlands/internal/platform/logger"
	"github.com/appengine-ltd/wildlands/internal/store"
)

const (
	DefaultTickInterval = 1 * time.Second
	DefaultPumpInterval = 100 * time.Millisecond

	// maxTickSeconds caps dt after a stall (suspended laptop, debugger).
	maxTickSeconds = 5.0
)

// Driver owns the loop goroutine. Collaborators keep calling Sim directly.
// Build it with NewDriver; a literal Driver cannot be stopped except by ctx.
type Driver struct {
	Sim          *game.Simulation
	TickInterval time.Duration
	PumpInterval time.Duration

	// Autosave is skipped when Saves is nil or AutosaveInterval is zero.
	Saves            store.Store
	Slot             string
	AutosaveInterval time.Duration

	Logger *logger.Logger
	Now    func() time.Time

	ticks    atomic.Int64
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewDriver creates a driver with the default 1 Hz tick.
func NewDriver(sim *game.Simulation, log *logger.Logger) *Driver {
	return &Driver{
		Sim:          sim,
		TickInterval: DefaultTickInterval,
		PumpInterval: DefaultPumpInterval,
		Logger:       log,
		Now:          time.Now,
		stopChan:     make(chan struct{}),
	}
}

// Start runs the loop until ctx is cancelled or Stop is called. Call in a
// goroutine.
func (d *Driver) Start(ctx context.Context) {
	tickEvery := orDefault(d.TickInterval, DefaultTickInterval)
	pumpEvery := orDefault(d.PumpInterval, DefaultPumpInterval)
	d.Logger.Infof("engine started: tick %s, pump %s", tickEvery, pumpEvery)

	ticker := time.NewTicker(tickEvery)
	defer ticker.Stop()
	pump := time.NewTicker(pumpEvery)
	defer pump.Stop()

	var autosave <-chan time.Time
	if d.Saves != nil && d.AutosaveInterval > 0 {
		t := time.NewTicker(d.AutosaveInterval)
		defer t.Stop()
		autosave = t.C
	}

	last := d.now()
	for {
		select {
		case <-ctx.Done():
			d.Logger.Info("engine stopped by context")
			d.finalSave(context.WithoutCancel(ctx))
			return
		case <-d.stopChan:
			d.Logger.Info("engine stopped manually")
			d.finalSave(ctx)
			return
		case <-ticker.C:
			now := d.now()
			d.tick(now.Sub(last).Seconds())
			last = now
		case <-pump.C:
			d.Sim.Housekeep(d.now())
		case <-autosave:
			d.save(ctx)
		}
	}
}

// Stop ends the loop. Safe to call more than once.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() {
		if d.stopChan != nil {
			close(d.stopChan)
		}
	})
}

// Ticks reports how many ticks have been applied.
func (d *Driver) Ticks() int64 {
	return d.ticks.Load()
}

func (d *Driver) tick(seconds float64) {
	if seconds <= 0 {
		return
	}
	if seconds > maxTickSeconds {
		d.Logger.Warnf("engine stalled for %.1fs, clamping tick", seconds)
		seconds = maxTickSeconds
	}
	d.Sim.Tick(seconds)
	d.ticks.Add(1)
}

func (d *Driver) save(ctx context.Context) {
	if d.Sim.Phase() == game.PhaseDead {
		return
	}
	if err := d.Saves.Save(ctx, d.Slot, d.Sim.Snapshot()); err != nil {
		d.Logger.Errorf("autosave %s: %v", d.Slot, err)
		return
	}
	d.Logger.Event("AUTOSAVE", d.Slot, "snapshot written")
}

func (d *Driver) finalSave(ctx context.Context) {
	if d.Saves != nil && d.AutosaveInterval > 0 {
		d.save(ctx)
	}
}

func (d *Driver) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func orDefault(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}
