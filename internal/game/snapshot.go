package game

import (
	"encoding/json"
	"fmt"
	"math"
)

// SnapshotFormatVersion increments whenever persisted fields change meaning.
const SnapshotFormatVersion = 1

// Snapshot is the persisted subset of the state. Notifications, projectiles,
// drops and phase are transient and never saved.
type Snapshot struct {
	FormatVersion  int            `json:"formatVersion" jsonschema:"minimum=1,description=Snapshot layout version"`
	Health         float64        `json:"health" jsonschema:"minimum=0,maximum=100"`
	Hunger         float64        `json:"hunger" jsonschema:"minimum=0,maximum=100"`
	Thirst         float64        `json:"thirst" jsonschema:"minimum=0,maximum=100"`
	GameTime       float64        `json:"gameTime" jsonschema:"minimum=0,maximum=2400,description=Game units since the start of the day"`
	Day            int            `json:"day" jsonschema:"minimum=1"`
	Weather        Weather        `json:"weather" jsonschema:"enum=sunny,enum=rainy,enum=snowy"`
	Language       string         `json:"language" jsonschema:"enum=en,enum=tr"`
	Inventory      map[string]int `json:"inventory" jsonschema:"description=Item id to positive count"`
	WorldResources WorldResources `json:"worldResources"`
	PlayerPosition Vec3           `json:"playerPosition"`
	PlacedItems    []PlacedItem   `json:"placedItems"`
	Wildlife       []Animal       `json:"wildlife"`
	TorchFuel      float64        `json:"torchFuel" jsonschema:"minimum=0,maximum=1"`
	Shelters       []Shelter      `json:"shelters"`
}

// snapshotWire distinguishes absent fields from zero values on decode.
type snapshotWire struct {
	FormatVersion  *int            `json:"formatVersion"`
	Health         *float64        `json:"health"`
	Hunger         *float64        `json:"hunger"`
	Thirst         *float64        `json:"thirst"`
	GameTime       *float64        `json:"gameTime"`
	Day            *int            `json:"day"`
	Weather        *Weather        `json:"weather"`
	Language       *string         `json:"language"`
	Inventory      map[string]int  `json:"inventory"`
	WorldResources *WorldResources `json:"worldResources"`
	PlayerPosition *Vec3           `json:"playerPosition"`
	PlacedItems    []PlacedItem    `json:"placedItems"`
	Wildlife       *[]Animal       `json:"wildlife"`
	TorchFuel      *float64        `json:"torchFuel"`
	Shelters       []Shelter       `json:"shelters"`
}

// Snapshot captures the persisted fields.
func (s *Simulation) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state.clone()
	return Snapshot{
		FormatVersion:  SnapshotFormatVersion,
		Health:         st.Vitals.Health,
		Hunger:         st.Vitals.Hunger,
		Thirst:         st.Vitals.Thirst,
		GameTime:       st.GameTime,
		Day:            st.Day,
		Weather:        st.Weather,
		Language:       st.Language,
		Inventory:      st.Inventory,
		WorldResources: st.Resources,
		PlayerPosition: st.PlayerPosition,
		PlacedItems:    st.PlacedItems,
		Wildlife:       st.Wildlife,
		TorchFuel:      st.TorchFuel,
		Shelters:       st.Shelters,
	}
}

func (s *Simulation) MarshalSnapshot() ([]byte, error) {
	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// RestoreJSON decodes a snapshot leniently: unknown fields are ignored,
// missing fields take defaults and every value is sanitized.
func (s *Simulation) RestoreJSON(data []byte) error {
	var wire snapshotWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if wire.FormatVersion != nil && *wire.FormatVersion > SnapshotFormatVersion {
		return fmt.Errorf("snapshot format %d is newer than supported %d", *wire.FormatVersion, SnapshotFormatVersion)
	}
	s.mutate(func() {
		s.restore(wire)
	})
	return nil
}

// Restore loads a typed snapshot through the same sanitizing path.
func (s *Simulation) Restore(snap Snapshot) {
	wire := snapshotWire{
		Health:         &snap.Health,
		Hunger:         &snap.Hunger,
		Thirst:         &snap.Thirst,
		GameTime:       &snap.GameTime,
		Day:            &snap.Day,
		Weather:        &snap.Weather,
		Language:       &snap.Language,
		Inventory:      snap.Inventory,
		WorldResources: &snap.WorldResources,
		PlayerPosition: &snap.PlayerPosition,
		PlacedItems:    snap.PlacedItems,
		Wildlife:       &snap.Wildlife,
		TorchFuel:      &snap.TorchFuel,
		Shelters:       snap.Shelters,
	}
	s.mutate(func() {
		s.restore(wire)
	})
}

func (s *Simulation) restore(w snapshotWire) {
	language := s.state.Language
	if w.Language != nil && validLanguage(*w.Language) {
		language = *w.Language
	}

	st := State{
		Vitals:         defaultVitals(s.tuning.IdealTemp),
		GameTime:       startingGameTime,
		Day:            1,
		Weather:        WeatherSunny,
		Language:       language,
		Inventory:      Inventory{},
		PlayerPosition: startingPosition,
		TorchFuel:      1.0,
		Phase:          PhaseRunning,
	}
	if w.Health != nil {
		st.Vitals.Health = *w.Health
	}
	if w.Hunger != nil {
		st.Vitals.Hunger = *w.Hunger
	}
	if w.Thirst != nil {
		st.Vitals.Thirst = *w.Thirst
	}
	st.Vitals = st.Vitals.sanitized(s.tuning.IdealTemp)

	if w.GameTime != nil {
		t := finiteOr(*w.GameTime, startingGameTime)
		st.GameTime = math.Mod(math.Max(t, 0), s.tuning.DayLength)
	}
	if w.Day != nil {
		st.Day = max(*w.Day, 1)
	}
	if w.Weather != nil && w.Weather.Valid() {
		st.Weather = *w.Weather
	}
	if w.Inventory != nil {
		st.Inventory = Inventory(w.Inventory).sanitized()
	}
	if w.PlayerPosition != nil && w.PlayerPosition.finite() {
		st.PlayerPosition = *w.PlayerPosition
	}
	if w.TorchFuel != nil {
		st.TorchFuel = clampFloat(finiteOr(*w.TorchFuel, 1), 0, 1)
	}

	if w.WorldResources != nil {
		st.Resources = sanitizeResources(*w.WorldResources)
	} else {
		st.Resources = s.generateResources()
	}
	if w.Wildlife != nil {
		st.Wildlife = sanitizeWildlife(*w.Wildlife)
	} else {
		st.Wildlife = initialWildlife()
	}
	st.PlacedItems = s.sanitizePlaced(w.PlacedItems)
	st.Shelters = sanitizeShelters(w.Shelters)

	if st.Vitals.Health <= 0 {
		st.Phase = PhaseDead
	}
	s.state = st
	s.log.Eventf("RESTORE", "world", "day %d time %.0f", st.Day, st.GameTime)
}

func sanitizeResources(in WorldResources) WorldResources {
	seen := map[string]bool{}
	keep := func(list []Resource) []Resource {
		out := make([]Resource, 0, len(list))
		for _, r := range list {
			if r.ID == "" || seen[r.ID] || !r.Position.finite() {
				continue
			}
			r.Durability = clampFloat(finiteOr(r.Durability, maxVital), 0, maxVital)
			if r.Durability <= 0 {
				continue
			}
			seen[r.ID] = true
			out = append(out, r)
		}
		return out
	}
	return WorldResources{Trees: keep(in.Trees), Rocks: keep(in.Rocks), Bushes: keep(in.Bushes)}
}

func sanitizeWildlife(in []Animal) []Animal {
	seen := map[string]bool{}
	out := make([]Animal, 0, len(in))
	for _, a := range in {
		if a.ID == "" || seen[a.ID] || !a.Species.Valid() || !a.Position.finite() {
			continue
		}
		if a.Health <= 0 {
			continue
		}
		a.Health = min(a.Health, a.Species.MaxHealth())
		seen[a.ID] = true
		out = append(out, a)
	}
	return out
}

func (s *Simulation) sanitizePlaced(in []PlacedItem) []PlacedItem {
	out := make([]PlacedItem, 0, len(in))
	for _, p := range in {
		if p.ID == "" || !p.Kind.Valid() || !p.Position.finite() {
			continue
		}
		p.MaxFuel = s.tuning.CampfireMaxFuel
		p.Fuel = clampFloat(finiteOr(p.Fuel, 0), 0, p.MaxFuel)
		if p.Kind == PlacedCampfire {
			p.Active = p.Fuel > 0
		} else {
			p.Active = true
		}
		out = append(out, p)
	}
	return out
}

func sanitizeShelters(in []Shelter) []Shelter {
	out := make([]Shelter, 0, len(in))
	for _, sh := range in {
		if sh.ID == "" || !sh.Position.finite() {
			continue
		}
		sh.Level = ShelterLevel(clamp(int(sh.Level), int(ShelterTent), int(ShelterHouse)))
		out = append(out, sh)
	}
	return out
}
