package game

// PlaceItem drops a fueled object into the world and returns its id.
func (s *Simulation) PlaceItem(kind PlacedKind, pos Vec3) string {
	var id string
	s.mutateIf(func() bool {
		if !kind.Valid() || !pos.finite() {
			return false
		}
		id = s.placeItem(kind, pos)
		return true
	})
	return id
}

func (s *Simulation) placeItem(kind PlacedKind, pos Vec3) string {
	item := PlacedItem{
		ID:       s.ids.next(string(kind)),
		Kind:     kind,
		Position: pos,
		Active:   true,
		Fuel:     s.tuning.CampfireMaxFuel,
		MaxFuel:  s.tuning.CampfireMaxFuel,
	}
	s.state.PlacedItems = append(s.state.PlacedItems, item)
	s.log.Eventf("PLACE", item.ID, "%s at (%.1f, %.1f)", kind, pos.X, pos.Z)
	return item.ID
}

// DeployCampfire spends a crafted campfire and lights it at pos.
func (s *Simulation) DeployCampfire(pos Vec3) (string, bool) {
	var id string
	s.mutate(func() {
		if !s.canAct() || !pos.finite() {
			return
		}
		if !s.state.Inventory.remove(ItemCampfire, 1) {
			s.notify(SeverityWarning, msgNoCampfire)
			return
		}
		id = s.placeItem(PlacedCampfire, pos)
		s.notify(SeveritySuccess, msgPlaced, ItemCampfire)
	})
	return id, id != ""
}

// UpdateCampfires burns every lit campfire for dt seconds. A campfire that
// runs dry goes out and stays out; torch sticks never burn.
func (s *Simulation) UpdateCampfires(dt float64) {
	s.mutateIf(func() bool {
		return s.burnCampfires(dt)
	})
}

func (s *Simulation) burnCampfires(dt float64) bool {
	if dt <= 0 {
		return false
	}
	changed := false
	for i := range s.state.PlacedItems {
		p := &s.state.PlacedItems[i]
		if p.Kind != PlacedCampfire || !p.Active {
			continue
		}
		p.Fuel -= dt * s.tuning.CampfireBurnRate
		changed = true
		if p.Fuel <= 0 {
			p.Fuel = 0
			p.Active = false
			s.log.Event("EXTINGUISH", p.ID, "out of fuel")
			s.notify(SeverityInfo, msgCampfireOut)
		}
	}
	return changed
}

// burnTorch drains the held torch and swaps in a fresh one from the pack.
func (s *Simulation) burnTorch(dt float64) {
	if !s.state.TorchLit || dt <= 0 {
		return
	}
	s.state.TorchFuel -= dt * s.tuning.TorchBurnRate
	if s.state.TorchFuel > 0 {
		return
	}
	s.state.TorchFuel = 0
	if s.state.Inventory.remove(ItemTorch, 1) {
		s.state.TorchFuel = 1.0
		s.notify(SeverityInfo, msgTorchRelit)
		return
	}
	s.state.TorchLit = false
	s.notify(SeverityWarning, msgTorchOut)
}

// AddShelter registers a shelter without spending materials.
func (s *Simulation) AddShelter(level ShelterLevel, pos Vec3) string {
	var id string
	s.mutateIf(func() bool {
		if !pos.finite() {
			return false
		}
		id = s.addShelter(ShelterLevel(clamp(int(level), int(ShelterTent), int(ShelterHouse))), pos)
		return true
	})
	return id
}

func (s *Simulation) addShelter(level ShelterLevel, pos Vec3) string {
	sh := Shelter{ID: s.ids.next("shelter"), Level: level, Position: pos}
	s.state.Shelters = append(s.state.Shelters, sh)
	s.log.Eventf("SHELTER", sh.ID, "%s at (%.1f, %.1f)", level, pos.X, pos.Z)
	return sh.ID
}

// BuildShelter spends the tent cost and pitches a tent at pos.
func (s *Simulation) BuildShelter(pos Vec3) (string, bool) {
	var id string
	s.mutate(func() {
		if !s.canAct() || !pos.finite() {
			return
		}
		cost, _ := shelterCost(ShelterTent)
		if !s.state.Inventory.has(cost) {
			s.notify(SeverityWarning, msgMissingMaterial, ShelterTent.String())
			return
		}
		for item, n := range cost {
			s.state.Inventory.remove(item, n)
		}
		id = s.addShelter(ShelterTent, pos)
		s.notify(SeveritySuccess, msgShelterBuilt, ShelterTent.String())
	})
	return id, id != ""
}

// UpgradeShelter raises a shelter one level. Levels never go down.
func (s *Simulation) UpgradeShelter(id string) bool {
	var ok bool
	s.mutateIf(func() bool {
		idx := s.state.findShelter(id)
		if idx < 0 || !s.canAct() {
			return false
		}
		sh := &s.state.Shelters[idx]
		if sh.Level >= ShelterHouse {
			s.notify(SeverityInfo, msgShelterMaxed)
			return true
		}
		next := sh.Level + 1
		cost, _ := shelterCost(next)
		if !s.state.Inventory.has(cost) {
			s.notify(SeverityWarning, msgMissingMaterial, next.String())
			return true
		}
		for item, n := range cost {
			s.state.Inventory.remove(item, n)
		}
		sh.Level = next
		ok = true
		s.log.Eventf("SHELTER", sh.ID, "upgraded to %s", next)
		s.notify(SeveritySuccess, msgShelterUpgraded, next.String())
		return true
	})
	return ok
}
