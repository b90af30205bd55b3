package game

import "testing"

func TestTickIntegratesStarvingPlayerInDaylight(t *testing.T) {
	sim, _ := newTestSimulation(t)
	sim.state.Vitals = VitalSigns{Health: 100, Hunger: 0, Thirst: 50, Temperature: 37}
	sim.state.Weather = WeatherSunny
	sim.state.GameTime = 800

	sim.Tick(1)

	v := sim.View().Vitals
	if !approx(v.Health, 99.5) {
		t.Fatalf("expected health 99.5, got %.4f", v.Health)
	}
	if v.Hunger != 0 {
		t.Fatalf("expected hunger to stay clamped at 0, got %.4f", v.Hunger)
	}
	if !approx(v.Thirst, 49.9) {
		t.Fatalf("expected thirst 49.9, got %.4f", v.Thirst)
	}
	if !approx(v.Temperature, 35.8) {
		t.Fatalf("expected temperature 35.8, got %.4f", v.Temperature)
	}
}

func TestWarmthFromCampfireOneUnitAway(t *testing.T) {
	tuning := DefaultTuning()
	in := TickInput{
		PlayerPosition: Vec3{X: 0, Z: 0},
		Campfires:      []Vec3{{X: 1, Z: 0}},
	}
	warmth, resting := Warmth(in, tuning)
	if !approx(warmth, 37.5) {
		t.Fatalf("expected warmth 37.5, got %.4f", warmth)
	}
	if !resting {
		t.Fatalf("expected campfire proximity to count as resting")
	}

	in.Campfires = []Vec3{{X: 3.5, Z: 0}}
	if warmth, _ := Warmth(in, tuning); warmth != 0 {
		t.Fatalf("expected no warmth at the radius edge, got %.4f", warmth)
	}
}

func TestWarmthStacksTorchAndShelter(t *testing.T) {
	tuning := DefaultTuning()
	in := TickInput{
		PlayerPosition: Vec3{},
		TorchLit:       true,
		TorchFuel:      0.5,
		Shelters:       []Vec3{{X: 2}, {X: 3}},
	}
	warmth, resting := Warmth(in, tuning)
	if !approx(warmth, 25) {
		t.Fatalf("expected torch 10 + one shelter 15, got %.2f", warmth)
	}
	if !resting {
		t.Fatalf("expected shelter to count as resting")
	}

	in.TorchFuel = 0
	in.Shelters = nil
	if warmth, _ := Warmth(in, tuning); warmth != 0 {
		t.Fatalf("expected an empty torch to give no heat, got %.2f", warmth)
	}
}

func TestRestingNearFireRegeneratesAndSlowsDrain(t *testing.T) {
	tuning := DefaultTuning()
	in := TickInput{
		Vitals:    VitalSigns{Health: 50, Hunger: 0, Thirst: 40, Temperature: 36},
		GameTime:  1000,
		Weather:   WeatherSunny,
		Campfires: []Vec3{{X: 1}},
	}
	res := ComputeTick(in, 1, tuning)
	if !res.IsResting {
		t.Fatalf("expected resting near fire while warm")
	}
	if !approx(res.Delta.Health, 0.2) {
		t.Fatalf("expected +0.2 regen replacing starvation drain, got %.4f", res.Delta.Health)
	}
	if !approx(res.Delta.Hunger, -0.015) || !approx(res.Delta.Thirst, -0.03) {
		t.Fatalf("expected drains at 30%%, got hunger %.4f thirst %.4f", res.Delta.Hunger, res.Delta.Thirst)
	}

	in.Vitals.Temperature = 20
	if res := ComputeTick(in, 1, tuning); res.IsResting {
		t.Fatalf("expected no rest while body temperature is low")
	}
}

func TestComputeTickNightSnowPenalties(t *testing.T) {
	tuning := DefaultTuning()
	in := TickInput{
		Vitals:   VitalSigns{Health: 80, Hunger: 5, Thirst: 50, Temperature: 12},
		GameTime: 2000,
		Weather:  WeatherSnowy,
	}
	res := ComputeTick(in, 1, tuning)
	if !res.IsNight {
		t.Fatalf("expected 2000 to be night")
	}
	if !approx(res.TargetTemp, -10) {
		t.Fatalf("expected target 5 - 15 = -10, got %.2f", res.TargetTemp)
	}
	// critical hunger 0.25 plus extreme cold 0.2
	if !approx(res.Delta.Health, -0.45) {
		t.Fatalf("expected -0.45 health, got %.4f", res.Delta.Health)
	}
	if !approx(res.Delta.Temperature, -2.2) {
		t.Fatalf("expected temperature delta -2.2, got %.4f", res.Delta.Temperature)
	}
}

func TestTickSkippedUnlessRunning(t *testing.T) {
	sim, _ := newTestSimulation(t)
	before := sim.View()

	sim.SetPaused(true)
	sim.Tick(1)
	after := sim.View()
	if after.GameTime != before.GameTime || after.Vitals != before.Vitals {
		t.Fatalf("expected paused tick to be a no-op")
	}

	sim.SetPaused(false)
	sim.Tick(1)
	if sim.View().GameTime == before.GameTime {
		t.Fatalf("expected running tick to advance time")
	}
}

func TestStarvationEndsInDeathUntilReset(t *testing.T) {
	sim, _ := newTestSimulation(t)
	sim.state.Vitals = VitalSigns{Health: 0.4, Hunger: 0, Thirst: 0, Temperature: 37}

	sim.Tick(1)
	st := sim.View()
	if st.Phase != PhaseDead {
		t.Fatalf("expected dead phase, got %s", st.Phase)
	}
	if st.Vitals.Health != 0 {
		t.Fatalf("expected health clamped at 0, got %.2f", st.Vitals.Health)
	}

	gameTime := st.GameTime
	sim.Tick(5)
	if sim.View().GameTime != gameTime {
		t.Fatalf("expected dead simulation to stop ticking")
	}
	if sim.ConsumeItem(ItemApple) {
		t.Fatalf("expected dead player unable to eat")
	}

	sim.Reset()
	st = sim.View()
	if st.Phase != PhaseRunning || st.Vitals.Health != 100 || st.Day != 1 || st.GameTime != 800 {
		t.Fatalf("unexpected reset state: %+v phase=%s", st.Vitals, st.Phase)
	}
	if st.Inventory.Count(ItemWood) != 6 || st.Inventory.Count(ItemStone) != 17 || st.Inventory.Count(ItemWater) != 3 {
		t.Fatalf("unexpected reset inventory: %v", st.Inventory)
	}
	if st.Inventory.Count(ItemApple) != 0 {
		t.Fatalf("expected reset inventory without apples, got %v", st.Inventory)
	}
	if st.PlayerPosition != (Vec3{Y: 2}) {
		t.Fatalf("expected spawn position, got %+v", st.PlayerPosition)
	}
}

func TestTickBurnsTorchAndRelightsFromPack(t *testing.T) {
	sim, _ := newTestSimulation(t)
	sim.AddItem(ItemTorch, 1)
	sim.SetTorchLit(true)
	sim.state.TorchFuel = 0.005

	sim.Tick(1)
	st := sim.View()
	if !st.TorchLit || st.TorchFuel != 1.0 {
		t.Fatalf("expected fresh torch, lit=%v fuel=%.3f", st.TorchLit, st.TorchFuel)
	}
	if st.Inventory.Count(ItemTorch) != 0 {
		t.Fatalf("expected spare torch consumed")
	}

	sim.state.TorchFuel = 0.005
	sim.Tick(1)
	st = sim.View()
	if st.TorchLit || st.TorchFuel != 0 {
		t.Fatalf("expected torch out, lit=%v fuel=%.3f", st.TorchLit, st.TorchFuel)
	}
}
