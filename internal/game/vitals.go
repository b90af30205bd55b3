package game

import "math"

type VitalSigns struct {
	Health      float64 `json:"health"`
	Hunger      float64 `json:"hunger"`
	Thirst      float64 `json:"thirst"`
	Temperature float64 `json:"temperature"`
}

// VitalDelta is a relative change; Temperature is the only unbounded channel.
type VitalDelta struct {
	Health      float64 `json:"health"`
	Hunger      float64 `json:"hunger"`
	Thirst      float64 `json:"thirst"`
	Temperature float64 `json:"temperature"`
}

func defaultVitals(idealTemp float64) VitalSigns {
	return VitalSigns{Health: maxVital, Hunger: maxVital, Thirst: maxVital, Temperature: idealTemp}
}

// Apply adds d and clamps health, hunger and thirst into [0,100].
func (v VitalSigns) Apply(d VitalDelta) VitalSigns {
	return VitalSigns{
		Health:      clampFloat(v.Health+finiteOr(d.Health, 0), 0, maxVital),
		Hunger:      clampFloat(v.Hunger+finiteOr(d.Hunger, 0), 0, maxVital),
		Thirst:      clampFloat(v.Thirst+finiteOr(d.Thirst, 0), 0, maxVital),
		Temperature: v.Temperature + finiteOr(d.Temperature, 0),
	}
}

func (v VitalSigns) sanitized(idealTemp float64) VitalSigns {
	return VitalSigns{
		Health:      clampFloat(finiteOr(v.Health, maxVital), 0, maxVital),
		Hunger:      clampFloat(finiteOr(v.Hunger, maxVital), 0, maxVital),
		Thirst:      clampFloat(finiteOr(v.Thirst, maxVital), 0, maxVital),
		Temperature: finiteOr(v.Temperature, idealTemp),
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// UpdateVitals applies a relative change through the clamped path.
func (s *Simulation) UpdateVitals(d VitalDelta) {
	s.mutate(func() {
		s.applyVitals(d)
	})
}

func (s *Simulation) applyVitals(d VitalDelta) {
	s.state.Vitals = s.state.Vitals.Apply(d)
	s.checkDeath()
}

func (s *Simulation) checkDeath() {
	if s.state.Vitals.Health > 0 || s.state.Phase == PhaseDead {
		return
	}
	s.state.Phase = PhaseDead
	s.state.TorchLit = false
	s.notify(SeverityWarning, msgDied)
	s.log.Event("PHASE", "player", "dead")
}
