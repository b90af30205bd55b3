package game

import "testing"

func TestDurabilityDamageRemovesDepletedNode(t *testing.T) {
	sim, _ := newTestSimulation(t)
	tree := sim.state.Resources.Trees[0]
	sim.state.Resources.Trees[0].Durability = 20
	before := len(sim.state.Resources.Trees)

	if !sim.UpdateResourceDurability(ResourceTree, tree.ID, 25) {
		t.Fatalf("expected tree removed")
	}
	st := sim.View()
	if len(st.Resources.Trees) != before-1 {
		t.Fatalf("expected one fewer tree, got %d", len(st.Resources.Trees))
	}
	if _, idx := st.findResource(ResourceTree, tree.ID); idx >= 0 {
		t.Fatalf("expected %s gone", tree.ID)
	}

	if sim.UpdateResourceDurability(ResourceTree, "tree-missing", 25) {
		t.Fatalf("expected missing id to be a no-op")
	}
	if len(sim.View().Resources.Trees) != before-1 {
		t.Fatalf("expected registry unchanged by missing id")
	}
}

func TestDurabilityOnlyDecreases(t *testing.T) {
	sim, _ := newTestSimulation(t)
	rock := sim.state.Resources.Rocks[0]

	sim.UpdateResourceDurability(ResourceRock, rock.ID, -50)
	list, idx := sim.state.findResource(ResourceRock, rock.ID)
	if idx < 0 || (*list)[idx].Durability != 100 {
		t.Fatalf("expected negative damage ignored")
	}
	sim.UpdateResourceDurability(ResourceRock, rock.ID, 30)
	list, idx = sim.state.findResource(ResourceRock, rock.ID)
	if (*list)[idx].Durability != 70 {
		t.Fatalf("expected durability 70, got %.1f", (*list)[idx].Durability)
	}
}

func TestHarvestTreeFiveStrikes(t *testing.T) {
	sim, _ := newTestSimulation(t)
	tree := sim.state.Resources.Trees[3]

	for i := 0; i < 4; i++ {
		res := sim.Harvest(ResourceTree, tree.ID)
		if !res.OK || res.Depleted {
			t.Fatalf("strike %d: unexpected result %+v", i, res)
		}
	}
	res := sim.Harvest(ResourceTree, tree.ID)
	if !res.OK || !res.Depleted || res.Items[ItemWood] != 1 {
		t.Fatalf("expected final strike to fell the tree, got %+v", res)
	}
	if sim.Count(ItemWood) != 11 {
		t.Fatalf("expected 6 + 5 wood, got %d", sim.Count(ItemWood))
	}
	if res := sim.Harvest(ResourceTree, tree.ID); res.OK {
		t.Fatalf("expected felled tree to be gone")
	}
}

func TestHarvestBushTwoStrikes(t *testing.T) {
	sim, _ := newTestSimulation(t)
	bush := sim.state.Resources.Bushes[0]
	sim.Harvest(ResourceBush, bush.ID)
	res := sim.Harvest(ResourceBush, bush.ID)
	if !res.Depleted || sim.Count(ItemApple) != 12 {
		t.Fatalf("expected bush depleted with 12 apples, got %+v apples=%d", res, sim.Count(ItemApple))
	}
}

func TestHarvestRockYieldsStoneAndSometimesFlint(t *testing.T) {
	sim, _ := newTestSimulation(t)
	sim.tuning.FlintChance = 1
	rock := sim.state.Resources.Rocks[0]

	res := sim.Harvest(ResourceRock, rock.ID)
	if res.Items[ItemStone] != 1 || res.Items[ItemFlint] != 1 {
		t.Fatalf("expected stone and flint, got %+v", res.Items)
	}

	sim.tuning.FlintChance = 0
	res = sim.Harvest(ResourceRock, rock.ID)
	if _, ok := res.Items[ItemFlint]; ok {
		t.Fatalf("expected no flint at zero chance")
	}
}

func TestHarvestRejectedWhenPackIsFull(t *testing.T) {
	sim, _ := newTestSimulation(t)
	sim.state.Inventory = Inventory{ItemStone: sim.tuning.Capacity}
	tree := sim.state.Resources.Trees[0]

	if res := sim.Harvest(ResourceTree, tree.ID); res.OK {
		t.Fatalf("expected harvest refused at capacity")
	}
	list, idx := sim.state.findResource(ResourceTree, tree.ID)
	if (*list)[idx].Durability != 100 {
		t.Fatalf("expected durability untouched, got %.1f", (*list)[idx].Durability)
	}
	if !hasNotification(sim.View(), "Inventory full") {
		t.Fatalf("expected inventory full warning")
	}
}

func TestGeneratedWorldWithinBounds(t *testing.T) {
	sim, _ := newTestSimulation(t)
	st := sim.View()
	if len(st.Resources.Trees) != 60 || len(st.Resources.Rocks) != 50 || len(st.Resources.Bushes) != 40 {
		t.Fatalf("unexpected initial counts %d/%d/%d", len(st.Resources.Trees), len(st.Resources.Rocks), len(st.Resources.Bushes))
	}
	for _, tree := range st.Resources.Trees {
		if tree.Position.X < -90 || tree.Position.X > 90 || tree.Position.Z < -90 || tree.Position.Z > 90 {
			t.Fatalf("tree out of bounds: %+v", tree.Position)
		}
		if tree.Variation.Height < 3 || tree.Variation.Height > 7 {
			t.Fatalf("tree height out of range: %.2f", tree.Variation.Height)
		}
	}
	for _, rock := range st.Resources.Rocks {
		if rock.Variation.Scale < 0.4 || rock.Variation.Scale > 1.0 {
			t.Fatalf("rock scale out of range: %.2f", rock.Variation.Scale)
		}
	}

	other, err := NewSimulation(Config{Seed: 99})
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	if other.View().Resources.Trees[0].Position != st.Resources.Trees[0].Position {
		t.Fatalf("expected same seed to place the same world")
	}
}
