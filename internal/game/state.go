package game

import (
	"maps"
	"time"
)

// State is the whole authoritative simulation state. Only the Simulation
// mutates it; collaborators receive deep copies through View.
type State struct {
	Vitals   VitalSigns `json:"vitals"`
	GameTime float64    `json:"gameTime"`
	Day      int        `json:"day"`
	Weather  Weather    `json:"weather"`
	Language string     `json:"language"`

	Inventory      Inventory      `json:"inventory"`
	Resources      WorldResources `json:"worldResources"`
	Wildlife       []Animal       `json:"wildlife"`
	PlacedItems    []PlacedItem   `json:"placedItems"`
	Shelters       []Shelter      `json:"shelters"`
	PlayerPosition Vec3           `json:"playerPosition"`
	TorchFuel      float64        `json:"torchFuel"`

	// Transient.
	TorchLit      bool           `json:"torchLit"`
	Projectiles   []Projectile   `json:"projectiles"`
	DroppedItems  []DroppedItem  `json:"droppedItems"`
	BloodEffects  []BloodEffect  `json:"bloodEffects"`
	Notifications []Notification `json:"notifications"`
	Phase         Phase          `json:"phase"`
	SleepStarted  time.Time      `json:"sleepStarted"`
	IsResting     bool           `json:"isResting"`
}

// View is the read-only copy handed to listeners and collaborators.
type View = State

var startingPosition = Vec3{X: 0, Y: 2, Z: 0}

const (
	startingGameTime = 800
	maxVital         = 100
)

func startingInventory() Inventory {
	return Inventory{ItemWood: 6, ItemStone: 17, ItemApple: 10, ItemWater: 3, ItemMeat: 5}
}

func resetInventory() Inventory {
	return Inventory{ItemWood: 6, ItemStone: 17, ItemWater: 3}
}

func (s *State) IsNight() bool {
	if s == nil {
		return false
	}
	return isNight(s.GameTime)
}

func isNight(gameTime float64) bool {
	return gameTime < 600 || gameTime > 1800
}

func (s State) clone() State {
	out := s
	out.Inventory = maps.Clone(s.Inventory)
	if out.Inventory == nil {
		out.Inventory = Inventory{}
	}
	out.Resources = s.Resources.clone()
	out.Wildlife = append([]Animal(nil), s.Wildlife...)
	out.PlacedItems = append([]PlacedItem(nil), s.PlacedItems...)
	out.Shelters = append([]Shelter(nil), s.Shelters...)
	out.Projectiles = append([]Projectile(nil), s.Projectiles...)
	out.DroppedItems = append([]DroppedItem(nil), s.DroppedItems...)
	out.BloodEffects = append([]BloodEffect(nil), s.BloodEffects...)
	out.Notifications = append([]Notification(nil), s.Notifications...)
	return out
}

func (s *State) findAnimal(id string) int {
	for i := range s.Wildlife {
		if s.Wildlife[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) findProjectile(id string) int {
	for i := range s.Projectiles {
		if s.Projectiles[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) findPlaced(id string) int {
	for i := range s.PlacedItems {
		if s.PlacedItems[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) findShelter(id string) int {
	for i := range s.Shelters {
		if s.Shelters[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) findResource(kind ResourceKind, id string) (*[]Resource, int) {
	list := s.Resources.list(kind)
	if list == nil {
		return nil, -1
	}
	for i := range *list {
		if (*list)[i].ID == id {
			return list, i
		}
	}
	return list, -1
}

// resourceKindOf reports which harvestable registry holds id.
func (s *State) resourceKindOf(id string) (ResourceKind, bool) {
	for _, kind := range ResourceKinds() {
		if _, idx := s.findResource(kind, id); idx >= 0 {
			return kind, true
		}
	}
	return "", false
}

// entityExists answers whether any registry still holds id.
func (s *State) entityExists(id string) bool {
	if _, ok := s.resourceKindOf(id); ok {
		return true
	}
	return s.findAnimal(id) >= 0 || s.findPlaced(id) >= 0 || s.findShelter(id) >= 0
}

// AnimalByID returns a copy of the animal when it is alive.
func (s *State) AnimalByID(id string) (Animal, bool) {
	if s == nil {
		return Animal{}, false
	}
	if idx := s.findAnimal(id); idx >= 0 {
		return s.Wildlife[idx], true
	}
	return Animal{}, false
}

// ResourceCount returns how many nodes of kind are standing.
func (s *State) ResourceCount(kind ResourceKind) int {
	if s == nil {
		return 0
	}
	if list := s.Resources.list(kind); list != nil {
		return len(*list)
	}
	return 0
}

func (s *State) speciesCount(species Species) int {
	n := 0
	for _, a := range s.Wildlife {
		if a.Species == species {
			n++
		}
	}
	return n
}

// NearestResource finds the closest standing node of kind on the ground plane.
func (s *State) NearestResource(kind ResourceKind, from Vec3) (Resource, float64, bool) {
	if s == nil {
		return Resource{}, 0, false
	}
	list := s.Resources.list(kind)
	if list == nil || len(*list) == 0 {
		return Resource{}, 0, false
	}
	best, bestDist := -1, 0.0
	for i, r := range *list {
		d := from.PlanarDistance(r.Position)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return (*list)[best], bestDist, true
}

// NearestAnimal finds the closest living animal on the ground plane.
func (s *State) NearestAnimal(from Vec3) (Animal, float64, bool) {
	if s == nil || len(s.Wildlife) == 0 {
		return Animal{}, 0, false
	}
	best, bestDist := -1, 0.0
	for i, a := range s.Wildlife {
		d := from.PlanarDistance(a.Position)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return s.Wildlife[best], bestDist, true
}

// NearestShelter returns the closest shelter on the ground plane.
func (s *State) NearestShelter(from Vec3) (Shelter, float64, bool) {
	if s == nil || len(s.Shelters) == 0 {
		return Shelter{}, 0, false
	}
	best, bestDist := -1, 0.0
	for i, sh := range s.Shelters {
		d := from.PlanarDistance(sh.Position)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return s.Shelters[best], bestDist, true
}

// NearestActiveCampfire returns the closest burning campfire.
func (s *State) NearestActiveCampfire(from Vec3) (PlacedItem, float64, bool) {
	if s == nil {
		return PlacedItem{}, 0, false
	}
	best, bestDist := -1, 0.0
	for i, p := range s.PlacedItems {
		if p.Kind != PlacedCampfire || !p.Active {
			continue
		}
		d := from.PlanarDistance(p.Position)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return PlacedItem{}, 0, false
	}
	return s.PlacedItems[best], bestDist, true
}
