package game

import (
	"math"
	"time"
)

const bloodMarkersPerKill = 3

// DamageWildlife subtracts amount from an animal; at zero health it dies and
// leaves meat plus blood markers. It reports whether the animal died.
func (s *Simulation) DamageWildlife(id string, amount int) bool {
	var killed bool
	s.mutateIf(func() bool {
		var found bool
		killed, found = s.damageAnimal(id, amount)
		return found
	})
	return killed
}

func (s *Simulation) damageAnimal(id string, amount int) (killed bool, found bool) {
	idx := s.state.findAnimal(id)
	if idx < 0 {
		return false, false
	}
	if amount <= 0 {
		return false, true
	}
	s.state.Wildlife[idx].Health -= amount
	if s.state.Wildlife[idx].Health > 0 {
		return false, true
	}
	s.killAnimalAt(idx)
	return true, true
}

// KillWildlife removes an animal outright with the same drops as a lethal hit.
func (s *Simulation) KillWildlife(id string) bool {
	var killed bool
	s.mutateIf(func() bool {
		idx := s.state.findAnimal(id)
		if idx < 0 {
			return false
		}
		s.killAnimalAt(idx)
		killed = true
		return true
	})
	return killed
}

// RemoveWildlife is KillWildlife under its registry name.
func (s *Simulation) RemoveWildlife(id string) bool {
	return s.KillWildlife(id)
}

func (s *Simulation) killAnimalAt(idx int) {
	animal := s.state.Wildlife[idx]
	s.state.Wildlife = append(s.state.Wildlife[:idx], s.state.Wildlife[idx+1:]...)

	now := s.now()
	ground := Vec3{X: animal.Position.X, Y: 0, Z: animal.Position.Z}
	s.state.DroppedItems = append(s.state.DroppedItems, DroppedItem{
		ID:        s.ids.next("drop"),
		ItemID:    ItemMeat,
		Amount:    animal.Species.MeatYield(),
		Position:  ground,
		SpawnedAt: now,
	})
	for i := 0; i < bloodMarkersPerKill; i++ {
		s.state.BloodEffects = append(s.state.BloodEffects, BloodEffect{
			ID:        s.ids.next("blood"),
			Position:  ground.Add(Vec3{X: randSpread(s.rng, 0.5), Z: randSpread(s.rng, 0.5)}),
			SpawnedAt: now,
		})
	}
	s.log.Eventf("KILL", animal.ID, "%s dropped %d meat", animal.Species, animal.Species.MeatYield())
	s.notify(SeveritySuccess, msgAnimalKilled, string(animal.Species))
	s.collectDrops()
}

// MoveWildlife lets the movement collaborator report where an animal wandered.
func (s *Simulation) MoveWildlife(id string, pos Vec3) {
	s.mutateIf(func() bool {
		idx := s.state.findAnimal(id)
		if idx < 0 || !pos.finite() {
			return false
		}
		s.state.Wildlife[idx].Position = pos
		s.followStuckArrows(id, pos)
		return true
	})
}

// collectDrops picks up every drop within reach that fits in the pack.
func (s *Simulation) collectDrops() {
	kept := s.state.DroppedItems[:0]
	for _, d := range s.state.DroppedItems {
		near := s.state.PlayerPosition.PlanarDistance(d.Position) <= s.tuning.PickupRadius
		if near && s.hasRoomFor(d.Amount) {
			s.state.Inventory.add(d.ItemID, d.Amount)
			s.notify(SeveritySuccess, msgPickedUp, d.Amount, d.ItemID)
			continue
		}
		kept = append(kept, d)
	}
	clear(s.state.DroppedItems[len(kept):])
	s.state.DroppedItems = kept
}

func (s *Simulation) expireDrops(now time.Time) bool {
	kept := s.state.DroppedItems[:0]
	for _, d := range s.state.DroppedItems {
		if now.Sub(d.SpawnedAt) < s.tuning.DropLifetime {
			kept = append(kept, d)
		}
	}
	changed := len(kept) != len(s.state.DroppedItems)
	clear(s.state.DroppedItems[len(kept):])
	s.state.DroppedItems = kept
	return changed
}

func (s *Simulation) expireBlood(now time.Time) bool {
	kept := s.state.BloodEffects[:0]
	for _, b := range s.state.BloodEffects {
		if now.Sub(b.SpawnedAt) < s.tuning.BloodLifetime {
			kept = append(kept, b)
		}
	}
	changed := len(kept) != len(s.state.BloodEffects)
	clear(s.state.BloodEffects[len(kept):])
	s.state.BloodEffects = kept
	return changed
}

// HeadingTo returns a unit direction on the ground plane, used when aiming.
func HeadingTo(from, to Vec3) Vec3 {
	d := Vec3{X: to.X - from.X, Z: to.Z - from.Z}
	n := math.Hypot(d.X, d.Z)
	if n == 0 {
		return Vec3{}
	}
	return d.Scale(1 / n)
}
