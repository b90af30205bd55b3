package game

import "math"

// SetGameTime moves the clock to t game units past the start of the current
// day. Values past the day length roll whole days forward.
func (s *Simulation) SetGameTime(t float64) {
	s.mutateIf(func() bool {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return false
		}
		s.setGameTime(t)
		return true
	})
}

func (s *Simulation) setGameTime(t float64) {
	if t < 0 {
		t = 0
	}
	dayLength := s.tuning.DayLength
	prevTime := s.state.GameTime
	prevDay := s.state.Day
	prevTotal := float64(prevDay)*dayLength + prevTime

	daysToAdd := int(math.Floor(t / dayLength))
	next := math.Mod(t, dayLength)

	s.state.GameTime = next
	s.state.Day += daysToAdd

	if daysToAdd > 0 {
		s.log.Eventf("DAY", "world", "day %d", s.state.Day)
		s.notify(SeverityInfo, msgNewDay, s.state.Day)
	}

	nextTotal := float64(s.state.Day)*dayLength + next
	if math.Floor(nextTotal/s.tuning.WeatherPeriod) > math.Floor(prevTotal/s.tuning.WeatherPeriod) {
		all := AllWeather()
		s.setWeather(all[s.rng.IntN(len(all))])
	}

	bucket := func(v float64) float64 { return math.Floor(v / s.tuning.RespawnPeriod) }
	if daysToAdd > 0 || bucket(prevTime) != bucket(next) {
		s.respawnPass()
	}
}

// advanceClock moves time forward by dt real seconds.
func (s *Simulation) advanceClock(dt float64) {
	s.setGameTime(s.state.GameTime + dt*s.tuning.GameUnitsPerSecond())
}
