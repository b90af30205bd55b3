package gui

import (
	"math"

	"github.com/appengine-ltd/wildlands/internal/game"
)

type interactionKind int

const (
	interactNone interactionKind = iota
	interactHarvest
	interactCampfire
	interactShelter
)

type interaction struct {
	Kind     interactionKind
	Resource game.ResourceKind
	TargetID string
	Distance float64
}

// chooseInteraction picks the closest thing the player can use with E.
func chooseInteraction(v game.View, t game.Tuning) interaction {
	best := interaction{Kind: interactNone, Distance: math.Inf(1)}
	consider := func(candidate interaction, reach float64) {
		if candidate.Distance <= reach && candidate.Distance < best.Distance {
			best = candidate
		}
	}

	for _, kind := range game.ResourceKinds() {
		if r, d, ok := v.NearestResource(kind, v.PlayerPosition); ok {
			consider(interaction{Kind: interactHarvest, Resource: kind, TargetID: r.ID, Distance: d}, t.InteractRadius)
		}
	}
	if fire, d, ok := v.NearestActiveCampfire(v.PlayerPosition); ok {
		consider(interaction{Kind: interactCampfire, TargetID: fire.ID, Distance: d}, t.InteractRadius)
	}
	if sh, d, ok := v.NearestShelter(v.PlayerPosition); ok {
		consider(interaction{Kind: interactShelter, TargetID: sh.ID, Distance: d}, t.ShelterRadius)
	}
	return best
}

func (i interaction) label() string {
	switch i.Kind {
	case interactHarvest:
		return "E: harvest " + string(i.Resource)
	case interactCampfire:
		return "E: cook"
	case interactShelter:
		return "E: cook or sleep"
	default:
		return ""
	}
}

// hasCookable reports whether a shelter visit should cook rather than sleep.
func hasCookable(v game.View) bool {
	return v.Inventory.Count(game.ItemMeat) > 0 || v.Inventory.Count(game.ItemApple) > 0
}
