package gui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/appengine-ltd/wildlands/internal/console"
	"github.com/appengine-ltd/wildlands/internal/game"
)

func TestChooseInteractionPicksClosest(t *testing.T) {
	tuning := game.DefaultTuning()
	v := game.View{
		Resources: game.WorldResources{
			Trees: []game.Resource{{ID: "tree-1", Position: game.Vec3{X: 2}, Durability: 100}},
			Rocks: []game.Resource{{ID: "rock-1", Position: game.Vec3{X: 1}, Durability: 100}},
		},
		Shelters: []game.Shelter{{ID: "shelter-1", Level: game.ShelterTent, Position: game.Vec3{Z: 3.5}}},
	}

	got := chooseInteraction(v, tuning)
	if got.Kind != interactHarvest || got.Resource != game.ResourceRock || got.TargetID != "rock-1" {
		t.Fatalf("expected nearest rock, got %+v", got)
	}
	if !strings.Contains(got.label(), "rock") {
		t.Fatalf("unexpected label %q", got.label())
	}

	v.Resources.Rocks = nil
	v.Resources.Trees = nil
	got = chooseInteraction(v, tuning)
	if got.Kind != interactShelter {
		t.Fatalf("expected shelter inside its wider radius, got %+v", got)
	}
}

func TestChooseInteractionIgnoresColdCampfires(t *testing.T) {
	tuning := game.DefaultTuning()
	v := game.View{PlacedItems: []game.PlacedItem{{ID: "fire-1", Kind: game.PlacedCampfire, Position: game.Vec3{X: 1}}}}
	if got := chooseInteraction(v, tuning); got.Kind != interactNone {
		t.Fatalf("expected nothing usable, got %+v", got)
	}
	v.PlacedItems[0].Active = true
	v.PlacedItems[0].Fuel = 10
	if got := chooseInteraction(v, tuning); got.Kind != interactCampfire || got.label() != "E: cook" {
		t.Fatalf("expected campfire, got %+v", got)
	}
}

func TestChooseInteractionOutOfReach(t *testing.T) {
	v := game.View{Resources: game.WorldResources{
		Trees: []game.Resource{{ID: "tree-1", Position: game.Vec3{X: 20}, Durability: 100}},
	}}
	got := chooseInteraction(v, game.DefaultTuning())
	if got.Kind != interactNone || got.label() != "" {
		t.Fatalf("expected nothing in reach, got %+v", got)
	}
}

func TestHasCookable(t *testing.T) {
	if hasCookable(game.View{Inventory: game.Inventory{game.ItemWood: 3}}) {
		t.Fatalf("wood is not food")
	}
	if !hasCookable(game.View{Inventory: game.Inventory{game.ItemApple: 1}}) {
		t.Fatalf("expected apples to be cookable")
	}
}

func TestCommandQueueRunsOffThread(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sim, err := game.NewSimulation(game.Config{Seed: 3, Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	q := newCommandQueue(1)
	if _, ok := q.Poll(); ok {
		t.Fatalf("expected empty queue")
	}
	if !q.Enqueue("status") {
		t.Fatalf("expected first line to queue")
	}
	if q.Enqueue("status") {
		t.Fatalf("expected full queue to refuse")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx, console.New(sim, nil, nil))

	deadline := time.After(2 * time.Second)
	for {
		if res, ok := q.Poll(); ok {
			if !res.Handled || !strings.Contains(res.Message, "1st day") {
				t.Fatalf("unexpected result %+v", res)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("command never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNilCommandQueue(t *testing.T) {
	var q *commandQueue
	if q.Enqueue("eat") {
		t.Fatalf("nil queue should refuse")
	}
	if _, ok := q.Poll(); ok {
		t.Fatalf("nil queue should be empty")
	}
}
