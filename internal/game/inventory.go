package game

import (
	"slices"
	"sort"
)

// Inventory maps item ids to positive counts. Entries never hold zero.
type Inventory map[string]int

const (
	ItemWood       = "wood"
	ItemStone      = "stone"
	ItemFlint      = "flint_stone"
	ItemApple      = "apple"
	ItemBakedApple = "baked_apple"
	ItemMeat       = "meat"
	ItemCookedMeat = "cooked_meat"
	ItemWater      = "water"
	ItemWaterEmpty = "waterEmpty"
	ItemCampfire   = "campfire"
	ItemTorch      = "torch"
	ItemBow        = "bow"
	ItemArrow      = "arrow"
)

func (inv Inventory) Count(id string) int {
	return inv[id]
}

func (inv Inventory) add(id string, n int) bool {
	if n <= 0 || id == "" {
		return false
	}
	inv[id] += n
	return true
}

// remove takes n of id, deleting the entry once it runs out. It reports
// false without touching anything when less than n is held.
func (inv Inventory) remove(id string, n int) bool {
	if n <= 0 || inv[id] < n {
		return false
	}
	inv.drop(id, n)
	return true
}

// drop removes up to n, deleting the entry when n covers the stack.
func (inv Inventory) drop(id string, n int) {
	if n <= 0 {
		return
	}
	if inv[id] <= n {
		delete(inv, id)
		return
	}
	inv[id] -= n
}

func (inv Inventory) has(cost map[string]int) bool {
	for id, n := range cost {
		if inv[id] < n {
			return false
		}
	}
	return true
}

// Units is the total number of carried items.
func (inv Inventory) Units() int {
	total := 0
	for _, n := range inv {
		total += n
	}
	return total
}

// SortedIDs lists held item ids alphabetically.
func (inv Inventory) SortedIDs() []string {
	ids := make([]string, 0, len(inv))
	for id := range inv {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (inv Inventory) sanitized() Inventory {
	out := Inventory{}
	for id, n := range inv {
		if id != "" && n > 0 {
			out[id] = n
		}
	}
	return out
}

func (s *Simulation) hasRoomFor(n int) bool {
	return s.state.Inventory.Units()+n <= s.tuning.Capacity
}

// AddItem adds n of id. Non-positive amounts are ignored.
func (s *Simulation) AddItem(id string, n int) {
	s.mutateIf(func() bool {
		if !s.state.Inventory.add(id, n) {
			return false
		}
		s.notify(SeveritySuccess, msgItemAdded, n, id)
		return true
	})
}

// RemoveItem removes n of id; removing at least the held amount deletes it.
func (s *Simulation) RemoveItem(id string, n int) {
	s.mutateIf(func() bool {
		if n <= 0 || s.state.Inventory[id] == 0 {
			return false
		}
		s.state.Inventory.drop(id, n)
		return true
	})
}

func (s *Simulation) Count(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Inventory.Count(id)
}

// CarriedUnits and Capacity together give the capacity readout.
func (s *Simulation) CarriedUnits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Inventory.Units()
}

func (s *Simulation) Capacity() int { return s.tuning.Capacity }

type consumeEffect struct {
	delta   VitalDelta
	returns string
}

func consumables() map[string]consumeEffect {
	return map[string]consumeEffect{
		ItemApple:      {delta: VitalDelta{Hunger: 15, Thirst: 10, Health: 5}},
		ItemBakedApple: {delta: VitalDelta{Hunger: 25, Thirst: 5, Health: 10}},
		ItemMeat:       {delta: VitalDelta{Hunger: 25, Health: 10}},
		ItemCookedMeat: {delta: VitalDelta{Hunger: 50, Health: 25}},
		ItemWater:      {delta: VitalDelta{Thirst: 30}, returns: ItemWaterEmpty},
	}
}

// Consumables lists the item ids ConsumeItem accepts.
func Consumables() []string {
	ids := make([]string, 0, 5)
	for id := range consumables() {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ConsumeItem eats or drinks one unit of id.
func (s *Simulation) ConsumeItem(id string) bool {
	var ok bool
	s.mutate(func() {
		ok = s.consumeItem(id)
	})
	return ok
}

func (s *Simulation) consumeItem(id string) bool {
	if !s.canAct() {
		return false
	}
	effect, known := consumables()[id]
	if !known {
		s.notify(SeverityWarning, msgNotEdible, id)
		return false
	}
	if s.state.Inventory[id] < 1 {
		s.notify(SeverityWarning, msgNotHeld, id)
		return false
	}
	if id == ItemWater && s.state.Vitals.Thirst >= maxVital {
		s.notify(SeverityWarning, msgThirstFull)
		return false
	}
	s.state.Inventory.remove(id, 1)
	if effect.returns != "" {
		s.state.Inventory.add(effect.returns, 1)
	}
	s.applyVitals(effect.delta)
	s.notify(SeveritySuccess, msgConsumed, id)
	return true
}

func cookable() map[string]string {
	return map[string]string{
		ItemMeat:  ItemCookedMeat,
		ItemApple: ItemBakedApple,
	}
}

// CookItem turns one raw item into its cooked form.
func (s *Simulation) CookItem(rawID string) bool {
	var ok bool
	s.mutate(func() {
		ok = s.cookItem(rawID)
	})
	return ok
}

func (s *Simulation) cookItem(rawID string) bool {
	if !s.canAct() {
		return false
	}
	cooked, known := cookable()[rawID]
	if !known || s.state.Inventory[rawID] < 1 {
		s.notify(SeverityInfo, msgNothingToCook)
		return false
	}
	s.state.Inventory.remove(rawID, 1)
	s.state.Inventory.add(cooked, 1)
	s.notify(SeveritySuccess, msgCooked, cooked)
	return true
}

// CookBest cooks meat when held, otherwise an apple.
func (s *Simulation) CookBest() (string, bool) {
	var cooked string
	var ok bool
	s.mutate(func() {
		for _, raw := range []string{ItemMeat, ItemApple} {
			if s.state.Inventory[raw] > 0 {
				ok = s.cookItem(raw)
				cooked = cookable()[raw]
				return
			}
		}
		s.notify(SeverityInfo, msgNothingToCook)
	})
	if !ok {
		cooked = ""
	}
	return cooked, ok
}

// FillWater refills every empty canteen.
func (s *Simulation) FillWater() int {
	var filled int
	s.mutate(func() {
		if !s.canAct() {
			return
		}
		filled = s.state.Inventory[ItemWaterEmpty]
		if filled == 0 {
			s.notify(SeverityInfo, msgNothingToFill)
			return
		}
		s.state.Inventory.drop(ItemWaterEmpty, filled)
		s.state.Inventory.add(ItemWater, filled)
		s.notify(SeveritySuccess, msgFilled, filled)
	})
	return filled
}
