package game

import "math"

type harvestRule struct {
	damage float64
	item   string
}

func harvestRules() map[ResourceKind]harvestRule {
	return map[ResourceKind]harvestRule{
		ResourceTree: {damage: 20, item: ItemWood},
		ResourceRock: {damage: 25, item: ItemStone},
		ResourceBush: {damage: 50, item: ItemApple},
	}
}

type HarvestResult struct {
	OK       bool           `json:"ok"`
	Items    map[string]int `json:"items,omitempty"`
	Depleted bool           `json:"depleted"`
}

// UpdateResourceDurability subtracts amount from a node and removes it once
// it reaches zero. Unknown ids are ignored. It reports whether the node was
// removed.
func (s *Simulation) UpdateResourceDurability(kind ResourceKind, id string, amount float64) bool {
	var removed bool
	s.mutateIf(func() bool {
		var found bool
		removed, found = s.damageResource(kind, id, amount)
		return found
	})
	return removed
}

func (s *Simulation) damageResource(kind ResourceKind, id string, amount float64) (removed bool, found bool) {
	list, idx := s.state.findResource(kind, id)
	if idx < 0 {
		return false, false
	}
	r := &(*list)[idx]
	r.Durability = clampFloat(r.Durability-math.Max(finiteOr(amount, 0), 0), 0, maxVital)
	if r.Durability > 0 {
		return false, true
	}
	*list = append((*list)[:idx], (*list)[idx+1:]...)
	return true, true
}

// Harvest applies one canonical strike to a node and credits its yield.
// A full pack rejects the strike before durability is touched.
func (s *Simulation) Harvest(kind ResourceKind, id string) HarvestResult {
	var res HarvestResult
	s.mutate(func() {
		res = s.harvest(kind, id)
	})
	return res
}

func (s *Simulation) harvest(kind ResourceKind, id string) HarvestResult {
	rule, known := harvestRules()[kind]
	if !known || !s.canAct() {
		return HarvestResult{}
	}
	if _, idx := s.state.findResource(kind, id); idx < 0 {
		return HarvestResult{}
	}
	if !s.hasRoomFor(1) {
		s.notify(SeverityWarning, msgInventoryFull)
		return HarvestResult{}
	}

	removed, _ := s.damageResource(kind, id, rule.damage)
	items := map[string]int{rule.item: 1}
	s.state.Inventory.add(rule.item, 1)
	s.notify(SeveritySuccess, msgItemAdded, 1, rule.item)
	if kind == ResourceRock && s.rng.Float64() < s.tuning.FlintChance && s.hasRoomFor(1) {
		s.state.Inventory.add(ItemFlint, 1)
		items[ItemFlint] = 1
		s.notify(SeveritySuccess, msgItemAdded, 1, ItemFlint)
	}
	return HarvestResult{OK: true, Items: items, Depleted: removed}
}
