package game

import (
	"math"
	"testing"
)

func TestApplyClampsBoundedChannels(t *testing.T) {
	v := VitalSigns{Health: 95, Hunger: 3, Thirst: 50, Temperature: 37}
	got := v.Apply(VitalDelta{Health: 20, Hunger: -10, Thirst: math.NaN(), Temperature: -60})
	if got.Health != 100 || got.Hunger != 0 || got.Thirst != 50 {
		t.Fatalf("unexpected clamped vitals: %+v", got)
	}
	if got.Temperature != -23 {
		t.Fatalf("expected temperature unbounded, got %.1f", got.Temperature)
	}
}

func TestUpdateVitalsKillsAtZeroHealth(t *testing.T) {
	sim, _ := newTestSimulation(t)
	sim.SetTorchLit(true)
	sim.UpdateVitals(VitalDelta{Health: -40})
	if sim.Phase() != PhaseRunning {
		t.Fatalf("expected alive at 60 health")
	}
	sim.UpdateVitals(VitalDelta{Health: -70})
	st := sim.View()
	if st.Phase != PhaseDead || st.Vitals.Health != 0 || st.TorchLit {
		t.Fatalf("expected dead with torch out, got %s %+v", st.Phase, st.Vitals)
	}
	if !hasNotification(st, "You died") {
		t.Fatalf("expected death notice, got %+v", st.Notifications)
	}

	sim.AddItem(ItemWood, 1)
	if _, ok := sim.ShootArrow(Vec3{}, Vec3{X: 1}, Vec3{}); ok {
		t.Fatalf("expected the dead to be unable to act")
	}
	sim.SetPlayerPosition(Vec3{X: 4})
	if sim.View().PlayerPosition == (Vec3{X: 4}) {
		t.Fatalf("expected the dead to stay put")
	}
}
