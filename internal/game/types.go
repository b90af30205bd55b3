package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }

// PlanarDistance ignores height; proximity rules work on the ground plane.
func (v Vec3) PlanarDistance(o Vec3) float64 {
	return math.Hypot(v.X-o.X, v.Z-o.Z)
}

func (v Vec3) Distance(o Vec3) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// UnmarshalJSON also accepts the compact [x, y, z] form.
func (v *Vec3) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var arr []float64
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		if len(arr) != 3 {
			return fmt.Errorf("position needs 3 components, got %d", len(arr))
		}
		*v = Vec3{arr[0], arr[1], arr[2]}
		return nil
	}
	type plain Vec3
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = Vec3(p)
	return nil
}

func (v Vec3) finite() bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

type Weather string

const (
	WeatherSunny Weather = "sunny"
	WeatherRainy Weather = "rainy"
	WeatherSnowy Weather = "snowy"
)

func AllWeather() []Weather {
	return []Weather{WeatherSunny, WeatherRainy, WeatherSnowy}
}

func (w Weather) Valid() bool {
	switch w {
	case WeatherSunny, WeatherRainy, WeatherSnowy:
		return true
	default:
		return false
	}
}

type Phase int

const (
	PhaseRunning Phase = iota
	PhasePaused
	PhaseSleeping
	PhaseDead
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseSleeping:
		return "sleeping"
	case PhaseDead:
		return "dead"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{PhaseRunning, PhasePaused, PhaseSleeping, PhaseDead} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

type ResourceKind string

const (
	ResourceTree ResourceKind = "tree"
	ResourceRock ResourceKind = "rock"
	ResourceBush ResourceKind = "bush"
)

func ResourceKinds() []ResourceKind {
	return []ResourceKind{ResourceTree, ResourceRock, ResourceBush}
}

type TreeVariant string

const (
	TreeNormal TreeVariant = "normal"
	TreePine   TreeVariant = "pine"
)

// Variation is purely cosmetic and never read by simulation rules.
type Variation struct {
	Height   float64 `json:"height,omitempty"`
	LeafSize float64 `json:"leafSize,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
}

type Resource struct {
	ID         string      `json:"id"`
	Position   Vec3        `json:"position"`
	Durability float64     `json:"durability"`
	Variant    TreeVariant `json:"variant,omitempty"`
	Variation  Variation   `json:"variation"`
}

type WorldResources struct {
	Trees  []Resource `json:"trees"`
	Rocks  []Resource `json:"rocks"`
	Bushes []Resource `json:"bushes"`
}

func (w *WorldResources) list(kind ResourceKind) *[]Resource {
	switch kind {
	case ResourceTree:
		return &w.Trees
	case ResourceRock:
		return &w.Rocks
	case ResourceBush:
		return &w.Bushes
	default:
		return nil
	}
}

func (w WorldResources) clone() WorldResources {
	return WorldResources{
		Trees:  append([]Resource(nil), w.Trees...),
		Rocks:  append([]Resource(nil), w.Rocks...),
		Bushes: append([]Resource(nil), w.Bushes...),
	}
}

type Species string

const (
	SpeciesDeer      Species = "deer"
	SpeciesRabbit    Species = "rabbit"
	SpeciesBird      Species = "bird"
	SpeciesPartridge Species = "partridge"
)

func AllSpecies() []Species {
	return []Species{SpeciesDeer, SpeciesRabbit, SpeciesBird, SpeciesPartridge}
}

// MaxHealth is the spawn health of the species; zero means unknown.
func (s Species) MaxHealth() int {
	switch s {
	case SpeciesDeer:
		return 3
	case SpeciesPartridge:
		return 2
	case SpeciesRabbit, SpeciesBird:
		return 1
	default:
		return 0
	}
}

func (s Species) MeatYield() int {
	if s == SpeciesDeer {
		return 2
	}
	return 1
}

func (s Species) Valid() bool { return s.MaxHealth() > 0 }

type Animal struct {
	ID       string  `json:"id"`
	Species  Species `json:"species"`
	Position Vec3    `json:"position"`
	Health   int     `json:"health"`
}

type DroppedItem struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	Amount    int       `json:"amount"`
	Position  Vec3      `json:"position"`
	SpawnedAt time.Time `json:"spawnedAt"`
}

type BloodEffect struct {
	ID        string    `json:"id"`
	Position  Vec3      `json:"position"`
	SpawnedAt time.Time `json:"spawnedAt"`
}

type Projectile struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Position    Vec3      `json:"position"`
	Velocity    Vec3      `json:"velocity"`
	Rotation    Vec3      `json:"rotation"`
	Stuck       bool      `json:"stuck"`
	StuckToID   string    `json:"stuckToId,omitempty"`
	StuckOffset Vec3      `json:"stuckOffset"`
	SpawnedAt   time.Time `json:"spawnedAt"`
	StuckAt     time.Time `json:"stuckAt"`
}

type PlacedKind string

const (
	PlacedCampfire   PlacedKind = "campfire"
	PlacedTorchStick PlacedKind = "torch_stick"
)

func (k PlacedKind) Valid() bool {
	return k == PlacedCampfire || k == PlacedTorchStick
}

type PlacedItem struct {
	ID       string     `json:"id"`
	Kind     PlacedKind `json:"type"`
	Position Vec3       `json:"position"`
	Active   bool       `json:"active"`
	Fuel     float64    `json:"fuel"`
	MaxFuel  float64    `json:"maxFuel"`
}

type ShelterLevel int

const (
	ShelterTent  ShelterLevel = 1
	ShelterHut   ShelterLevel = 2
	ShelterHouse ShelterLevel = 3
)

func (l ShelterLevel) String() string {
	switch l {
	case ShelterTent:
		return "tent"
	case ShelterHut:
		return "hut"
	case ShelterHouse:
		return "house"
	default:
		return fmt.Sprintf("shelter(%d)", int(l))
	}
}

type Shelter struct {
	ID       string       `json:"id"`
	Level    ShelterLevel `json:"level"`
	Position Vec3         `json:"position"`
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
}
