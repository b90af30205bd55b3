package game

import (
	"testing"
	"time"
)

func TestDeerTakesThreeHitsAndDropsMeat(t *testing.T) {
	sim, _ := newTestSimulation(t)

	if sim.DamageWildlife("deer-1", 1) || sim.DamageWildlife("deer-1", 1) {
		t.Fatalf("expected deer alive after two hits")
	}
	if !sim.DamageWildlife("deer-1", 1) {
		t.Fatalf("expected third hit to kill")
	}
	st := sim.View()
	if _, ok := st.AnimalByID("deer-1"); ok {
		t.Fatalf("expected deer removed")
	}
	if len(st.DroppedItems) != 1 || st.DroppedItems[0].ItemID != ItemMeat || st.DroppedItems[0].Amount != 2 {
		t.Fatalf("expected a 2-meat drop, got %+v", st.DroppedItems)
	}
	if st.DroppedItems[0].Position.X != 15 || st.DroppedItems[0].Position.Z != -15 {
		t.Fatalf("expected drop at the carcass, got %+v", st.DroppedItems[0].Position)
	}
	if len(st.BloodEffects) != 3 {
		t.Fatalf("expected 3 blood markers, got %d", len(st.BloodEffects))
	}
}

func TestDamageUnknownAnimalIsNoOp(t *testing.T) {
	sim, _ := newTestSimulation(t)
	before := len(sim.View().Wildlife)
	if sim.DamageWildlife("wolf-9", 5) {
		t.Fatalf("expected unknown id ignored")
	}
	if len(sim.View().Wildlife) != before {
		t.Fatalf("expected wildlife unchanged")
	}
}

func TestKillingNearbyRabbitPicksUpMeat(t *testing.T) {
	sim, _ := newTestSimulation(t)
	sim.SetPlayerPosition(Vec3{X: 8, Y: 2, Z: 10.5})

	if !sim.RemoveWildlife("rabbit-1") {
		t.Fatalf("expected rabbit killed")
	}
	st := sim.View()
	if len(st.DroppedItems) != 0 {
		t.Fatalf("expected drop collected immediately, got %+v", st.DroppedItems)
	}
	if st.Inventory.Count(ItemMeat) != 6 {
		t.Fatalf("expected 5 + 1 meat, got %d", st.Inventory.Count(ItemMeat))
	}
}

func TestDropsPickedUpOnApproachAndExpire(t *testing.T) {
	sim, clock := newTestSimulation(t)
	sim.KillWildlife("deer-2")
	sim.KillWildlife("rabbit-2")
	if len(sim.View().DroppedItems) != 2 {
		t.Fatalf("expected two drops")
	}

	sim.SetPlayerPosition(Vec3{X: -25, Y: 2, Z: 36})
	if sim.Count(ItemMeat) != 7 || len(sim.View().DroppedItems) != 1 {
		t.Fatalf("expected deer meat collected, meat=%d drops=%d", sim.Count(ItemMeat), len(sim.View().DroppedItems))
	}

	clock.Advance(301 * time.Second)
	sim.Housekeep(clock.Now())
	st := sim.View()
	if len(st.DroppedItems) != 0 || len(st.BloodEffects) != 0 {
		t.Fatalf("expected drops and blood expired, got %d/%d", len(st.DroppedItems), len(st.BloodEffects))
	}
}

func TestRespawnPassFillsSpeciesShortfall(t *testing.T) {
	sim, _ := newTestSimulation(t)
	sim.RespawnPass()
	st := sim.View()
	if st.speciesCount(SpeciesDeer) != 3 || st.speciesCount(SpeciesBird) != 4 ||
		st.speciesCount(SpeciesPartridge) != 3 || st.speciesCount(SpeciesRabbit) != 2 {
		t.Fatalf("unexpected species counts: %v", st.Wildlife)
	}
	for _, a := range st.Wildlife {
		if a.Health != a.Species.MaxHealth() {
			t.Fatalf("expected %s at full health, got %d", a.ID, a.Health)
		}
		if a.Species == SpeciesBird && (a.Position.Y < 15 || a.Position.Y > 25) {
			t.Fatalf("expected bird aloft, got y=%.1f", a.Position.Y)
		}
	}

	sim.RespawnPass()
	if len(sim.View().Wildlife) != len(st.Wildlife) {
		t.Fatalf("expected no respawn above the floors")
	}
}
