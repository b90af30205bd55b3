package game

import (
	"fmt"
	"math"
)

const (
	initialTrees  = 60
	initialRocks  = 50
	initialBushes = 40

	treeSpread     = 90
	rockSpread     = 75
	bushSpread     = 60
	wildlifeSpread = 50
)

type resourceFloor struct {
	kind   ResourceKind
	floor  int
	top    int
	spread float64
}

func resourceFloors() []resourceFloor {
	return []resourceFloor{
		{kind: ResourceTree, floor: 40, top: 10, spread: treeSpread},
		{kind: ResourceRock, floor: 30, top: 5, spread: rockSpread},
		{kind: ResourceBush, floor: 25, top: 5, spread: bushSpread},
	}
}

// wildlifeFloors are per-species minimums; a respawn pass fills the shortfall.
func wildlifeFloors() map[Species]int {
	return map[Species]int{
		SpeciesDeer:      3,
		SpeciesRabbit:    2,
		SpeciesBird:      4,
		SpeciesPartridge: 3,
	}
}

func (s *Simulation) generateResources() WorldResources {
	var w WorldResources
	for i := 0; i < initialTrees; i++ {
		w.Trees = append(w.Trees, s.newResource(ResourceTree, fmt.Sprintf("tree-%d", i), treeSpread))
	}
	for i := 0; i < initialRocks; i++ {
		w.Rocks = append(w.Rocks, s.newResource(ResourceRock, fmt.Sprintf("rock-%d", i), rockSpread))
	}
	for i := 0; i < initialBushes; i++ {
		w.Bushes = append(w.Bushes, s.newResource(ResourceBush, fmt.Sprintf("bush-%d", i), bushSpread))
	}
	return w
}

func (s *Simulation) newResource(kind ResourceKind, id string, spread float64) Resource {
	r := Resource{
		ID:         id,
		Position:   Vec3{X: randSpread(s.rng, spread), Y: 0, Z: randSpread(s.rng, spread)},
		Durability: maxVital,
	}
	switch kind {
	case ResourceTree:
		r.Variant = TreeNormal
		if s.rng.Float64() > 0.4 {
			r.Variant = TreePine
		}
		r.Variation = Variation{Height: randRange(s.rng, 3, 7), LeafSize: randRange(s.rng, 1.5, 3)}
	case ResourceRock:
		r.Variation = Variation{Scale: randRange(s.rng, 0.4, 1.0), Rotation: randRange(s.rng, 0, 2*math.Pi)}
	case ResourceBush:
		r.Variation = Variation{Scale: randRange(s.rng, 0.6, 1.8)}
	}
	return r
}

func initialWildlife() []Animal {
	return []Animal{
		{ID: "deer-1", Species: SpeciesDeer, Position: Vec3{X: 15, Z: -15}, Health: SpeciesDeer.MaxHealth()},
		{ID: "deer-2", Species: SpeciesDeer, Position: Vec3{X: -25, Z: 35}, Health: SpeciesDeer.MaxHealth()},
		{ID: "rabbit-1", Species: SpeciesRabbit, Position: Vec3{X: 8, Z: 10}, Health: SpeciesRabbit.MaxHealth()},
		{ID: "rabbit-2", Species: SpeciesRabbit, Position: Vec3{X: -12, Z: -20}, Health: SpeciesRabbit.MaxHealth()},
	}
}

func (s *Simulation) newAnimal(species Species) Animal {
	pos := Vec3{X: randSpread(s.rng, wildlifeSpread), Z: randSpread(s.rng, wildlifeSpread)}
	if species == SpeciesBird {
		pos.Y = randRange(s.rng, 15, 25)
	}
	return Animal{
		ID:       s.respawnID(string(species)),
		Species:  species,
		Position: pos,
		Health:   species.MaxHealth(),
	}
}

// respawnID tags an id with its origin day and a run-wide sequence number,
// skipping any id a restored snapshot already holds.
func (s *Simulation) respawnID(prefix string) string {
	for {
		s.seq++
		id := fmt.Sprintf("%s-respawn-d%d-%d", prefix, s.state.Day, s.seq)
		if !s.state.entityExists(id) {
			return id
		}
	}
}

// RespawnPass tops registries back up to their floors.
func (s *Simulation) RespawnPass() {
	s.mutate(s.respawnPass)
}

func (s *Simulation) respawnPass() {
	added := map[string]int{}
	for _, f := range resourceFloors() {
		list := s.state.Resources.list(f.kind)
		if len(*list) >= f.floor {
			continue
		}
		for i := 0; i < f.top; i++ {
			*list = append(*list, s.newResource(f.kind, s.respawnID(string(f.kind)), f.spread))
		}
		added[string(f.kind)] = f.top
	}
	floors := wildlifeFloors()
	for _, species := range AllSpecies() {
		short := floors[species] - s.state.speciesCount(species)
		for i := 0; i < short; i++ {
			s.state.Wildlife = append(s.state.Wildlife, s.newAnimal(species))
		}
		if short > 0 {
			added[string(species)] = short
		}
	}
	if len(added) > 0 {
		s.log.Eventf("RESPAWN", "world", "day %d time %.0f: %v", s.state.Day, s.state.GameTime, added)
	}
}
