package game

import "math"

// TickInput is everything the vitals integration reads.
type TickInput struct {
	Vitals         VitalSigns
	GameTime       float64
	Weather        Weather
	PlayerPosition Vec3
	Campfires      []Vec3 // burning campfires only
	Shelters       []Vec3
	TorchLit       bool
	TorchFuel      float64
}

type TickResult struct {
	Delta      VitalDelta
	TargetTemp float64
	Warmth     float64
	IsNight    bool
	IsResting  bool
}

func weatherModifier(w Weather, t Tuning) float64 {
	switch w {
	case WeatherSnowy:
		return t.SnowyModifier
	case WeatherRainy:
		return t.RainyModifier
	default:
		return 0
	}
}

// Warmth sums heat from nearby campfires, a lit torch and a nearby shelter.
// Campfire or shelter proximity also counts as resting.
func Warmth(in TickInput, t Tuning) (warmth float64, resting bool) {
	for _, pos := range in.Campfires {
		d := in.PlayerPosition.PlanarDistance(pos)
		if d < t.CampfireRadius {
			warmth += (t.CampfireRadius - d) * t.CampfireHeat
			resting = true
		}
	}
	if in.TorchLit && in.TorchFuel > 0 {
		warmth += t.TorchHeat
	}
	for _, pos := range in.Shelters {
		if in.PlayerPosition.PlanarDistance(pos) <= t.ShelterRadius {
			warmth += t.ShelterHeat
			resting = true
			break
		}
	}
	return warmth, resting
}

// ComputeTick integrates vitals over dt seconds. It has no side effects.
func ComputeTick(in TickInput, dt float64, t Tuning) TickResult {
	res := TickResult{IsNight: isNight(in.GameTime)}
	if dt <= 0 {
		return res
	}

	base := t.DayTemp
	if res.IsNight {
		base = t.NightTemp
	}
	var restingNear bool
	res.Warmth, restingNear = Warmth(in, t)
	res.TargetTemp = base + weatherModifier(in.Weather, t) + res.Warmth

	v := in.Vitals
	res.Delta.Temperature = (res.TargetTemp - v.Temperature) * math.Min(1, t.TempResponse*dt)

	hungerLoss := t.HungerRate * dt
	thirstLoss := t.ThirstRate * dt

	var drain float64
	switch {
	case v.Hunger <= 0 || v.Thirst <= 0:
		drain = t.StarvationDrain
	case v.Hunger <= t.CriticalThreshold || v.Thirst <= t.CriticalThreshold || v.Temperature <= t.CriticalThreshold:
		drain = t.CriticalDrain
	}
	if v.Temperature < t.ComfortMin || v.Temperature > t.ComfortMax {
		drain += t.ExtremeDrain
	}
	res.Delta.Health = -drain * dt

	res.IsResting = restingNear && v.Temperature > t.RestMinTemp
	if res.IsResting {
		res.Delta.Health = t.RestRegen * dt
		hungerLoss *= t.RestDrainFactor
		thirstLoss *= t.RestDrainFactor
	}
	res.Delta.Hunger = -hungerLoss
	res.Delta.Thirst = -thirstLoss
	return res
}

func (s *Simulation) tickInput() TickInput {
	in := TickInput{
		Vitals:         s.state.Vitals,
		GameTime:       s.state.GameTime,
		Weather:        s.state.Weather,
		PlayerPosition: s.state.PlayerPosition,
		TorchLit:       s.state.TorchLit,
		TorchFuel:      s.state.TorchFuel,
	}
	for _, p := range s.state.PlacedItems {
		if p.Kind == PlacedCampfire && p.Active {
			in.Campfires = append(in.Campfires, p.Position)
		}
	}
	for _, sh := range s.state.Shelters {
		in.Shelters = append(in.Shelters, sh.Position)
	}
	return in
}

// Tick advances the world by dt real seconds. Only a running simulation
// ticks; paused, sleeping and dead states hold still.
func (s *Simulation) Tick(dt float64) {
	s.mutateIf(func() bool {
		if s.state.Phase != PhaseRunning || dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
			return false
		}
		s.advanceClock(dt)

		res := ComputeTick(s.tickInput(), dt, s.tuning)
		s.state.IsResting = res.IsResting
		s.applyVitals(res.Delta)

		s.burnCampfires(dt)
		s.burnTorch(dt)
		s.validateArrows()
		s.recoverArrows()
		s.collectDrops()
		return true
	})
}
