package game

import "time"

const (
	ProjectileArrow = "arrow"

	// StuckToGround marks an arrow resting in terrain; it never goes stale.
	StuckToGround = "ground"
)

// ShootArrow spends one arrow and registers it in flight. Arrows are
// refunded only by walking over them once stuck.
func (s *Simulation) ShootArrow(pos, vel, rot Vec3) (string, bool) {
	var id string
	s.mutate(func() {
		if !s.canAct() || !pos.finite() || !vel.finite() {
			return
		}
		if s.tuning.RequireBow && s.state.Inventory[ItemBow] < 1 {
			s.notify(SeverityWarning, msgNoBow)
			return
		}
		if !s.state.Inventory.remove(ItemArrow, 1) {
			s.notify(SeverityWarning, msgOutOfArrows)
			return
		}
		id = s.ids.next(ProjectileArrow)
		s.state.Projectiles = append(s.state.Projectiles, Projectile{
			ID:        id,
			Kind:      ProjectileArrow,
			Position:  pos,
			Velocity:  vel,
			Rotation:  rot,
			SpawnedAt: s.now(),
		})
	})
	return id, id != ""
}

// MoveProjectile records the physics collaborator's integration step for a
// flying arrow. Stuck arrows ignore it.
func (s *Simulation) MoveProjectile(id string, pos, vel, rot Vec3) {
	s.mutateIf(func() bool {
		idx := s.state.findProjectile(id)
		if idx < 0 || s.state.Projectiles[idx].Stuck || !pos.finite() || !vel.finite() {
			return false
		}
		p := &s.state.Projectiles[idx]
		p.Position, p.Velocity, p.Rotation = pos, vel, rot
		return true
	})
}

// StickArrow freezes an arrow at pos. stuckToID names the entity it lodged
// in; arrows in a live animal ride along with it.
func (s *Simulation) StickArrow(id string, pos, rot Vec3, stuckToID string) {
	s.mutateIf(func() bool {
		return s.stickArrow(id, pos, rot, stuckToID)
	})
}

func (s *Simulation) stickArrow(id string, pos, rot Vec3, stuckToID string) bool {
	idx := s.state.findProjectile(id)
	if idx < 0 || !pos.finite() || s.state.Projectiles[idx].Stuck {
		return false
	}
	if stuckToID == "" {
		stuckToID = StuckToGround
	}
	p := &s.state.Projectiles[idx]
	p.Stuck = true
	p.Velocity = Vec3{}
	p.Position = pos
	p.Rotation = rot
	p.StuckToID = stuckToID
	p.StuckOffset = Vec3{}
	p.StuckAt = s.now()
	if animal, ok := s.state.AnimalByID(stuckToID); ok {
		p.StuckOffset = pos.Sub(animal.Position)
	}
	return true
}

// ArrowHit is the collision entry point: it sticks the arrow and wounds the
// target when the target is an animal. It reports whether the animal died.
func (s *Simulation) ArrowHit(id string, pos, rot Vec3, targetID string) bool {
	var killed bool
	s.mutateIf(func() bool {
		if !s.stickArrow(id, pos, rot, targetID) {
			return false
		}
		if s.state.findAnimal(targetID) >= 0 {
			killed, _ = s.damageAnimal(targetID, 1)
		}
		return true
	})
	return killed
}

func (s *Simulation) RemoveProjectile(id string) {
	s.mutateIf(func() bool {
		idx := s.state.findProjectile(id)
		if idx < 0 {
			return false
		}
		s.state.Projectiles = append(s.state.Projectiles[:idx], s.state.Projectiles[idx+1:]...)
		return true
	})
}

func (s *Simulation) followStuckArrows(animalID string, pos Vec3) {
	for i := range s.state.Projectiles {
		p := &s.state.Projectiles[i]
		if p.Stuck && p.StuckToID == animalID {
			p.Position = pos.Add(p.StuckOffset)
		}
	}
}

// validateArrows drops stale stuck references. An arrow whose host is gone
// falls back to flight with zero velocity and a fresh lifetime so physics
// can settle it.
func (s *Simulation) validateArrows() bool {
	changed := false
	now := s.now()
	for i := range s.state.Projectiles {
		p := &s.state.Projectiles[i]
		if !p.Stuck || p.StuckToID == StuckToGround {
			continue
		}
		if animal, ok := s.state.AnimalByID(p.StuckToID); ok {
			p.Position = animal.Position.Add(p.StuckOffset)
			continue
		}
		if s.state.entityExists(p.StuckToID) {
			continue
		}
		p.Stuck = false
		p.StuckToID = ""
		p.StuckOffset = Vec3{}
		p.Velocity = Vec3{}
		p.SpawnedAt = now
		p.StuckAt = time.Time{}
		changed = true
	}
	return changed
}

// recoverArrows returns stuck arrows within reach to the quiver. Arrows
// still lodged in a live animal stay put.
func (s *Simulation) recoverArrows() bool {
	kept := s.state.Projectiles[:0]
	recovered := 0
	for _, p := range s.state.Projectiles {
		inAnimal := s.state.findAnimal(p.StuckToID) >= 0
		if p.Stuck && !inAnimal && s.state.PlayerPosition.PlanarDistance(p.Position) <= s.tuning.ArrowRecoveryRadius && s.hasRoomFor(1) {
			s.state.Inventory.add(ItemArrow, 1)
			recovered++
			continue
		}
		kept = append(kept, p)
	}
	clear(s.state.Projectiles[len(kept):])
	s.state.Projectiles = kept
	for i := 0; i < recovered; i++ {
		s.notify(SeveritySuccess, msgArrowRecovered)
	}
	return recovered > 0
}

func (s *Simulation) expireFlyingArrows(now time.Time) bool {
	kept := s.state.Projectiles[:0]
	for _, p := range s.state.Projectiles {
		if !p.Stuck && now.Sub(p.SpawnedAt) >= s.tuning.ArrowTTL {
			continue
		}
		kept = append(kept, p)
	}
	changed := len(kept) != len(s.state.Projectiles)
	clear(s.state.Projectiles[len(kept):])
	s.state.Projectiles = kept
	return changed
}
