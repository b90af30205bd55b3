package game

import "testing"

func TestCampfireBurnsOutAndStaysOut(t *testing.T) {
	sim, _ := newTestSimulation(t)
	id := sim.PlaceItem(PlacedCampfire, Vec3{X: 1})

	st := sim.View()
	fire := st.PlacedItems[st.findPlaced(id)]
	if !fire.Active || fire.Fuel != 100 || fire.MaxFuel != 100 {
		t.Fatalf("expected fresh fire, got %+v", fire)
	}

	sim.UpdateCampfires(10)
	st = sim.View()
	if got := st.PlacedItems[st.findPlaced(id)].Fuel; got != 95 {
		t.Fatalf("expected 95 fuel after 10s, got %.2f", got)
	}

	sim.UpdateCampfires(400)
	st = sim.View()
	fire = st.PlacedItems[st.findPlaced(id)]
	if fire.Active || fire.Fuel != 0 {
		t.Fatalf("expected extinguished fire at 0 fuel, got %+v", fire)
	}

	sim.UpdateCampfires(400)
	st = sim.View()
	fire = st.PlacedItems[st.findPlaced(id)]
	if fire.Active || fire.Fuel != 0 {
		t.Fatalf("expected repeat update to be idempotent, got %+v", fire)
	}
	if len(st.PlacedItems) != 1 {
		t.Fatalf("expected dead campfire to remain placed")
	}
}

func TestTorchStickNeverBurns(t *testing.T) {
	sim, _ := newTestSimulation(t)
	id := sim.PlaceItem(PlacedTorchStick, Vec3{})
	sim.UpdateCampfires(1000)
	st := sim.View()
	stick := st.PlacedItems[st.findPlaced(id)]
	if !stick.Active || stick.Fuel != 100 {
		t.Fatalf("expected torch stick untouched, got %+v", stick)
	}
	if warmth, _ := Warmth(sim.tickInput(), sim.tuning); warmth != 0 {
		t.Fatalf("expected torch stick to give no heat, got %.2f", warmth)
	}
}

func TestPlaceItemRejectsUnknownKind(t *testing.T) {
	sim, _ := newTestSimulation(t)
	if id := sim.PlaceItem("bonfire", Vec3{}); id != "" {
		t.Fatalf("expected unknown kind rejected, got %s", id)
	}
}

func TestDeployCampfireSpendsCraftedItem(t *testing.T) {
	sim, _ := newTestSimulation(t)
	if _, ok := sim.DeployCampfire(Vec3{X: 2}); ok {
		t.Fatalf("expected deploy to fail without a campfire item")
	}
	sim.Craft(ItemCampfire)
	id, ok := sim.DeployCampfire(Vec3{X: 2})
	if !ok || id == "" {
		t.Fatalf("expected campfire deployed")
	}
	if sim.Count(ItemCampfire) != 0 {
		t.Fatalf("expected campfire item spent")
	}
}

func TestShelterUpgradesOnlyUpward(t *testing.T) {
	sim, _ := newTestSimulation(t)
	sim.AddItem(ItemWood, 200)
	sim.AddItem(ItemStone, 100)

	id, ok := sim.BuildShelter(Vec3{X: 5})
	if !ok {
		t.Fatalf("expected tent built")
	}
	if !sim.UpgradeShelter(id) || !sim.UpgradeShelter(id) {
		t.Fatalf("expected tent to reach house")
	}
	st := sim.View()
	if st.Shelters[st.findShelter(id)].Level != ShelterHouse {
		t.Fatalf("expected house level")
	}
	wood := st.Inventory.Count(ItemWood)
	if wood != 6+200-10-20-40 {
		t.Fatalf("unexpected wood after building: %d", wood)
	}
	if sim.UpgradeShelter(id) {
		t.Fatalf("expected no upgrade beyond house")
	}
	if !hasNotification(sim.View(), "already a house") {
		t.Fatalf("expected maxed notice")
	}
}

func TestAddShelterClampsLevel(t *testing.T) {
	sim, _ := newTestSimulation(t)
	id := sim.AddShelter(7, Vec3{})
	st := sim.View()
	if st.Shelters[st.findShelter(id)].Level != ShelterHouse {
		t.Fatalf("expected level clamped to house")
	}
}
