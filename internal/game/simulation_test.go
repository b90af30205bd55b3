package game

import (
	"testing"
	"time"
)

func TestSleepWakesAfterDurationAndAdvancesClock(t *testing.T) {
	sim, clock := newTestSimulation(t)
	sim.SetTorchLit(true)
	sim.Sleep()
	st := sim.View()
	if st.Phase != PhaseSleeping || st.TorchLit {
		t.Fatalf("expected sleeping with torch stowed, got %s lit=%v", st.Phase, st.TorchLit)
	}

	sim.Tick(10)
	if sim.View().GameTime != startingGameTime {
		t.Fatalf("expected no tick while sleeping")
	}

	clock.Advance(time.Second)
	sim.Housekeep(clock.Now())
	if sim.Phase() != PhaseSleeping {
		t.Fatalf("expected still asleep after 1s")
	}

	clock.Advance(time.Second)
	sim.Housekeep(clock.Now())
	st = sim.View()
	if st.Phase != PhaseRunning {
		t.Fatalf("expected awake, got %s", st.Phase)
	}
	if st.GameTime != startingGameTime+500 {
		t.Fatalf("expected game time 1300, got %.1f", st.GameTime)
	}
	if !hasNotification(st, "wake up") {
		t.Fatalf("expected wake notice")
	}
}

func TestSleepRequiresShelterWhenConfigured(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tuning := DefaultTuning()
	tuning.SleepNeedsShelter = true
	sim, err := NewSimulation(Config{Seed: 5, Now: clock.Now, Tuning: tuning})
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	sim.Sleep()
	if sim.Phase() != PhaseRunning || !hasNotification(sim.View(), "shelter") {
		t.Fatalf("expected sleep refused without shelter")
	}
	sim.AddShelter(ShelterTent, Vec3{X: 1})
	sim.Sleep()
	if sim.Phase() != PhaseSleeping {
		t.Fatalf("expected sleep next to the tent")
	}
}

func TestPauseOnlyTogglesRunning(t *testing.T) {
	sim, _ := newTestSimulation(t)
	sim.SetPaused(true)
	if sim.Phase() != PhasePaused {
		t.Fatalf("expected paused")
	}
	sim.Sleep()
	if sim.Phase() != PhasePaused {
		t.Fatalf("expected sleep ignored while paused")
	}
	sim.SetPaused(false)
	sim.Sleep()
	sim.SetPaused(true)
	if sim.Phase() != PhaseSleeping {
		t.Fatalf("expected pause ignored while sleeping")
	}
}

func TestSubscribeReceivesCopiesUntilUnsubscribed(t *testing.T) {
	sim, _ := newTestSimulation(t)
	var views []View
	unsubscribe := sim.Subscribe(func(v View) {
		views = append(views, v)
	})

	sim.AddItem(ItemWood, 1)
	if len(views) != 1 || views[0].Inventory.Count(ItemWood) != 7 {
		t.Fatalf("expected one update with 7 wood, got %d", len(views))
	}
	views[0].Inventory[ItemWood] = 999
	if sim.Count(ItemWood) != 7 {
		t.Fatalf("expected listener copy to be detached")
	}

	sim.RemoveItem("feather", 1)
	if len(views) != 1 {
		t.Fatalf("expected no update for a no-op")
	}

	unsubscribe()
	unsubscribe()
	sim.AddItem(ItemWood, 1)
	if len(views) != 1 {
		t.Fatalf("expected no updates after unsubscribe")
	}
}

func TestListenerMayCallBack(t *testing.T) {
	sim, _ := newTestSimulation(t)
	calls := 0
	sim.Subscribe(func(v View) {
		calls++
		if calls == 1 {
			sim.AddItem(ItemStone, 1)
		}
	})
	sim.AddItem(ItemWood, 1)
	if calls != 2 || sim.Count(ItemStone) != 18 {
		t.Fatalf("expected re-entrant mutation, calls=%d stone=%d", calls, sim.Count(ItemStone))
	}
}

func TestNotificationsFadeAfterTTL(t *testing.T) {
	sim, clock := newTestSimulation(t)
	sim.Notify("hello", SeverityInfo)
	sim.Notify("odd", Severity("loud"))
	st := sim.View()
	if len(st.Notifications) != 2 || st.Notifications[1].Severity != SeverityInfo {
		t.Fatalf("unexpected notifications: %+v", st.Notifications)
	}

	sim.SetPaused(true)
	clock.Advance(3 * time.Second)
	sim.Housekeep(clock.Now())
	if len(sim.View().Notifications) != 0 {
		t.Fatalf("expected notifications expired even while paused")
	}
}

func TestLanguageSwitchesNotificationText(t *testing.T) {
	sim, _ := newTestSimulation(t)
	sim.SetLanguage("de")
	if sim.View().Language != "en" {
		t.Fatalf("expected unsupported language ignored")
	}
	sim.SetLanguage("tr")
	sim.SetTorchLit(true)
	sim.SetTorchLit(false)
	sim.state.TorchFuel = 0
	sim.SetTorchLit(true)
	if !hasNotification(sim.View(), "Meşalen yok") {
		t.Fatalf("expected Turkish notice, got %+v", sim.View().Notifications)
	}

	sim.Reset()
	if sim.View().Language != "tr" {
		t.Fatalf("expected language to survive reset")
	}
}

func TestResetUsesSmallerKit(t *testing.T) {
	sim, _ := newTestSimulation(t)
	sim.UpdateVitals(VitalDelta{Health: -100})
	if sim.Phase() != PhaseDead {
		t.Fatalf("expected dead")
	}
	sim.Reset()
	st := sim.View()
	if st.Phase != PhaseRunning || st.Vitals.Health != 100 || st.Day != 1 || st.GameTime != startingGameTime {
		t.Fatalf("unexpected state after reset: %+v", st.Vitals)
	}
	if st.Inventory.Count(ItemApple) != 0 || st.Inventory.Count(ItemMeat) != 0 || st.Inventory.Count(ItemStone) != 17 {
		t.Fatalf("unexpected reset inventory: %v", st.Inventory)
	}
}

func TestConfigValidate(t *testing.T) {
	if _, err := NewSimulation(Config{Language: "fr"}); err == nil {
		t.Fatalf("expected unsupported language rejected")
	}
	bad := DefaultTuning()
	bad.ComfortMin = 50
	if _, err := NewSimulation(Config{Tuning: bad}); err == nil {
		t.Fatalf("expected empty comfort band rejected")
	}
	bad = DefaultTuning()
	bad.FlintChance = 2
	if err := (Config{Tuning: bad}).Validate(); err == nil {
		t.Fatalf("expected flint chance above 1 rejected")
	}
	if err := (Config{}).Validate(); err != nil {
		t.Fatalf("expected zero config valid, got %v", err)
	}
}
