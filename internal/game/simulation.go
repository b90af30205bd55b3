package game

import (
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/appengine-ltd/wildlands/internal/platform/logger"
)

// Listener receives a deep copy of the state after every committed change.
// It runs outside the simulation lock and may call back into mutators.
type Listener func(View)

// Simulation is the authoritative survival state machine. Every exported
// method is safe for concurrent use; all rules run under one mutex.
type Simulation struct {
	mu     sync.Mutex
	state  State
	tuning Tuning
	seed   int64
	rng    *rand.Rand
	ids    *idSource
	now    func() time.Time
	log    *logger.Logger
	seq    int

	listeners    []listenerEntry
	nextListener int

	pausedAt time.Time
}

type listenerEntry struct {
	id int
	fn Listener
}

func NewSimulation(config Config) (*Simulation, error) {
	resolved := config

	if err := resolved.Validate(); err != nil {
		return nil, err
	}

	if resolved.Seed == 0 {
		resolved.Seed = time.Now().UnixNano()
	}
	if resolved.Tuning == (Tuning{}) {
		resolved.Tuning = DefaultTuning()
	}
	if resolved.Now == nil {
		resolved.Now = time.Now
	}
	if resolved.Language == "" {
		resolved.Language = "en"
	}

	s := &Simulation{
		tuning: resolved.Tuning,
		seed:   resolved.Seed,
		rng:    seededRNG(resolved.Seed),
		ids:    newIDSource(resolved.Seed),
		now:    resolved.Now,
		log:    resolved.Logger,
	}
	s.state = s.freshState(resolved.Language, startingInventory())
	s.log.Infof("simulation ready: seed=%d trees=%d rocks=%d bushes=%d wildlife=%d",
		s.seed, len(s.state.Resources.Trees), len(s.state.Resources.Rocks),
		len(s.state.Resources.Bushes), len(s.state.Wildlife))
	return s, nil
}

func (s *Simulation) freshState(language string, inv Inventory) State {
	return State{
		Vitals:         defaultVitals(s.tuning.IdealTemp),
		GameTime:       startingGameTime,
		Day:            1,
		Weather:        WeatherSunny,
		Language:       language,
		Inventory:      inv,
		Resources:      s.generateResources(),
		Wildlife:       initialWildlife(),
		PlayerPosition: startingPosition,
		TorchFuel:      1.0,
		Phase:          PhaseRunning,
	}
}

func (s *Simulation) Seed() int64 { return s.seed }

func (s *Simulation) Tuning() Tuning { return s.tuning }

// View returns a deep copy of the current state.
func (s *Simulation) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Phase reports the current phase without copying the state.
func (s *Simulation) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Phase
}

// Subscribe registers fn for change notifications and returns its
// unsubscribe function.
func (s *Simulation) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextListener++
	id := s.nextListener
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.listeners = slices.DeleteFunc(s.listeners, func(e listenerEntry) bool { return e.id == id })
		})
	}
}

func (s *Simulation) mutate(fn func()) {
	s.mutateIf(func() bool {
		fn()
		return true
	})
}

// mutateIf runs fn under the lock and publishes only when fn reports a change.
func (s *Simulation) mutateIf(fn func() bool) {
	s.mu.Lock()
	changed := fn()
	if !changed || len(s.listeners) == 0 {
		s.mu.Unlock()
		return
	}
	view := s.state.clone()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(view)
	}
}

func (s *Simulation) canAct() bool {
	return s.state.Phase != PhaseDead
}

// SetPaused toggles between Running and Paused. Sleeping and Dead ignore it.
func (s *Simulation) SetPaused(paused bool) {
	s.mutateIf(func() bool {
		switch {
		case paused && s.state.Phase == PhaseRunning:
			s.state.Phase = PhasePaused
			s.pausedAt = s.now()
		case !paused && s.state.Phase == PhasePaused:
			s.state.Phase = PhaseRunning
			if !s.pausedAt.IsZero() {
				s.shiftLifetimes(s.now().Sub(s.pausedAt))
			}
			s.pausedAt = time.Time{}
		default:
			return false
		}
		s.log.Event("PHASE", "player", s.state.Phase.String())
		return true
	})
}

// shiftLifetimes moves drop and flying-arrow clocks forward by the time
// spent paused.
func (s *Simulation) shiftLifetimes(d time.Duration) {
	if d <= 0 {
		return
	}
	for i := range s.state.DroppedItems {
		s.state.DroppedItems[i].SpawnedAt = s.state.DroppedItems[i].SpawnedAt.Add(d)
	}
	for i := range s.state.Projectiles {
		if !s.state.Projectiles[i].Stuck {
			s.state.Projectiles[i].SpawnedAt = s.state.Projectiles[i].SpawnedAt.Add(d)
		}
	}
}

func (s *Simulation) SetLanguage(lang string) {
	s.mutateIf(func() bool {
		if !validLanguage(lang) || s.state.Language == lang {
			return false
		}
		s.state.Language = lang
		return true
	})
}

func (s *Simulation) SetWeather(w Weather) {
	s.mutateIf(func() bool {
		if !w.Valid() {
			return false
		}
		s.setWeather(w)
		return true
	})
}

func (s *Simulation) setWeather(w Weather) {
	s.state.Weather = w
	s.log.Event("WEATHER", "world", string(w))
	s.notify(SeverityInfo, msgWeather, localizeWeather(s.state.Language, w))
}

// SetPlayerPosition moves the player and resolves proximity pickups.
func (s *Simulation) SetPlayerPosition(pos Vec3) {
	s.mutateIf(func() bool {
		if !pos.finite() || s.state.Phase == PhaseDead {
			return false
		}
		s.state.PlayerPosition = pos
		s.collectDrops()
		s.recoverArrows()
		return true
	})
}

// SetTorchLit equips or stows the torch. Lighting with an empty torch
// burns a fresh one from inventory.
func (s *Simulation) SetTorchLit(lit bool) {
	s.mutateIf(func() bool {
		if !lit {
			if !s.state.TorchLit {
				return false
			}
			s.state.TorchLit = false
			return true
		}
		if s.state.TorchLit || !s.canAct() {
			return false
		}
		if s.state.TorchFuel <= 0 {
			if !s.state.Inventory.remove(ItemTorch, 1) {
				s.notify(SeverityWarning, msgNoTorch)
				return true
			}
			s.state.TorchFuel = 1.0
		}
		s.state.TorchLit = true
		return true
	})
}

// Sleep starts the timed sleep transition; Housekeep wakes the player.
func (s *Simulation) Sleep() {
	s.mutateIf(func() bool {
		if s.state.Phase != PhaseRunning {
			return false
		}
		if s.tuning.SleepNeedsShelter {
			if _, d, ok := s.state.NearestShelter(s.state.PlayerPosition); !ok || d > s.tuning.ShelterRadius {
				s.notify(SeverityWarning, msgNeedShelter)
				return true
			}
		}
		s.state.Phase = PhaseSleeping
		s.state.SleepStarted = s.now()
		s.state.TorchLit = false
		s.log.Event("PHASE", "player", "sleeping")
		return true
	})
}

// Reset starts a new run after death or on request. Language survives.
func (s *Simulation) Reset() {
	s.mutate(func() {
		s.state = s.freshState(s.state.Language, resetInventory())
		s.log.Event("PHASE", "player", "reset")
	})
}

// Housekeep expires wall-clock bound entities and finishes sleep. It runs
// in every phase so notifications keep fading while paused.
func (s *Simulation) Housekeep(now time.Time) {
	s.mutateIf(func() bool {
		changed := s.expireNotifications(now)
		changed = s.expireBlood(now) || changed
		if s.state.Phase != PhasePaused {
			changed = s.expireDrops(now) || changed
			changed = s.expireFlyingArrows(now) || changed
		}
		if s.state.Phase == PhaseSleeping && now.Sub(s.state.SleepStarted) >= s.tuning.SleepDuration {
			s.state.Phase = PhaseRunning
			s.state.SleepStarted = time.Time{}
			s.setGameTime(s.state.GameTime + s.tuning.SleepAdvance)
			s.notify(SeveritySuccess, msgWokeUp)
			s.log.Event("PHASE", "player", "awake")
			changed = true
		}
		return changed
	})
}
