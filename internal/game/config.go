package game

import (
	"fmt"
	"time"

	"github.com/appengine-ltd/wildlands/internal/platform/logger"
)

// Tuning holds every balance constant the simulation reads. The zero value
// is replaced by DefaultTuning when a Simulation is built.
type Tuning struct {
	DayLength         float64 // game units per day
	RealSecondsPerDay float64

	HungerRate        float64
	ThirstRate        float64
	StarvationDrain   float64
	CriticalDrain     float64
	CriticalThreshold float64
	ExtremeDrain      float64
	ComfortMin        float64
	ComfortMax        float64

	DayTemp       float64
	NightTemp     float64
	IdealTemp     float64
	TempResponse  float64
	SnowyModifier float64
	RainyModifier float64

	CampfireRadius float64
	CampfireHeat   float64
	TorchHeat      float64
	ShelterRadius  float64
	ShelterHeat    float64

	RestRegen       float64
	RestDrainFactor float64
	RestMinTemp     float64

	CampfireBurnRate float64
	CampfireMaxFuel  float64
	TorchBurnRate    float64

	WeatherPeriod float64
	RespawnPeriod float64

	SleepDuration   time.Duration
	SleepAdvance    float64
	NotificationTTL time.Duration
	ArrowTTL        time.Duration
	DropLifetime    time.Duration
	BloodLifetime   time.Duration

	ArrowRecoveryRadius float64
	PickupRadius        float64
	InteractRadius      float64

	Capacity    int
	FlintChance float64

	RequireBow        bool
	SleepNeedsShelter bool
}

func DefaultTuning() Tuning {
	return Tuning{
		DayLength:         2400,
		RealSecondsPerDay: 1440,

		HungerRate:        0.05,
		ThirstRate:        0.1,
		StarvationDrain:   0.5,
		CriticalDrain:     0.25,
		CriticalThreshold: 10,
		ExtremeDrain:      0.2,
		ComfortMin:        15,
		ComfortMax:        42,

		DayTemp:       25,
		NightTemp:     5,
		IdealTemp:     37,
		TempResponse:  0.1,
		SnowyModifier: -15,
		RainyModifier: -5,

		CampfireRadius: 3.5,
		CampfireHeat:   15,
		TorchHeat:      10,
		ShelterRadius:  4,
		ShelterHeat:    15,

		RestRegen:       0.2,
		RestDrainFactor: 0.3,
		RestMinTemp:     30,

		CampfireBurnRate: 0.5,
		CampfireMaxFuel:  100,
		TorchBurnRate:    0.01,

		WeatherPeriod: 3000,
		RespawnPeriod: 600,

		SleepDuration:   2 * time.Second,
		SleepAdvance:    500,
		NotificationTTL: 3 * time.Second,
		ArrowTTL:        10 * time.Second,
		DropLifetime:    300 * time.Second,
		BloodLifetime:   1500 * time.Millisecond,

		ArrowRecoveryRadius: 2.0,
		PickupRadius:        1.5,
		InteractRadius:      3.0,

		Capacity:    200,
		FlintChance: 0.1,

		RequireBow: true,
	}
}

// GameUnitsPerSecond is how far the clock moves per real second.
func (t Tuning) GameUnitsPerSecond() float64 {
	return t.DayLength / t.RealSecondsPerDay
}

func (t Tuning) Validate() error {
	if t.DayLength <= 0 || t.RealSecondsPerDay <= 0 {
		return fmt.Errorf("day length must be positive, got %.1f units / %.1fs", t.DayLength, t.RealSecondsPerDay)
	}
	if t.RespawnPeriod <= 0 || t.WeatherPeriod <= 0 {
		return fmt.Errorf("respawn and weather periods must be positive")
	}
	if t.HungerRate < 0 || t.ThirstRate < 0 || t.CampfireBurnRate < 0 || t.TorchBurnRate < 0 {
		return fmt.Errorf("drain rates cannot be negative")
	}
	if t.ComfortMin >= t.ComfortMax {
		return fmt.Errorf("comfort band is empty: [%.1f, %.1f]", t.ComfortMin, t.ComfortMax)
	}
	if t.TempResponse <= 0 || t.TempResponse > 1 {
		return fmt.Errorf("temperature response must be in (0,1], got %.2f", t.TempResponse)
	}
	if t.CampfireMaxFuel <= 0 {
		return fmt.Errorf("campfire max fuel must be positive")
	}
	if t.Capacity < 1 {
		return fmt.Errorf("carry capacity must be at least 1, got %d", t.Capacity)
	}
	if t.FlintChance < 0 || t.FlintChance > 1 {
		return fmt.Errorf("flint chance must be a probability, got %.2f", t.FlintChance)
	}
	return nil
}

type Config struct {
	Seed     int64
	Language string
	Tuning   Tuning

	// Now is the wall clock used for notification, sleep and projectile
	// lifetimes. Defaults to time.Now.
	Now    func() time.Time
	Logger *logger.Logger
}

func (c Config) Validate() error {
	if c.Language != "" && !validLanguage(c.Language) {
		return fmt.Errorf("unsupported language: %s", c.Language)
	}
	if c.Tuning == (Tuning{}) {
		return nil
	}
	if err := c.Tuning.Validate(); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	return nil
}
