package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/appengine-ltd/wildlands/internal/game"
)

func renderStatus(v game.View) string {
	var b strings.Builder
	period := "day"
	if v.IsNight() {
		period = "night"
	}
	fmt.Fprintf(&b, "%s day, %s (%s), %s\n", humanize.Ordinal(v.Day), Clock(v.GameTime), period, v.Weather)
	fmt.Fprintf(&b, "Health %s  Hunger %s  Thirst %s  Temp %.1f°C",
		meter(v.Vitals.Health), meter(v.Vitals.Hunger), meter(v.Vitals.Thirst), v.Vitals.Temperature)

	var flags []string
	if v.Phase != game.PhaseRunning {
		flags = append(flags, v.Phase.String())
	}
	if v.IsResting {
		flags = append(flags, "resting")
	}
	if v.TorchLit {
		flags = append(flags, fmt.Sprintf("torch %.0f%%", v.TorchFuel*100))
	}
	if fire, d, ok := v.NearestActiveCampfire(v.PlayerPosition); ok && d < 10 {
		flags = append(flags, fmt.Sprintf("campfire %.0f m (%.0f fuel)", d, fire.Fuel))
	}
	if sh, d, ok := v.NearestShelter(v.PlayerPosition); ok && d < 10 {
		flags = append(flags, fmt.Sprintf("%s %.0f m", sh.Level, d))
	}
	if len(flags) > 0 {
		fmt.Fprintf(&b, "\n[%s]", strings.Join(flags, ", "))
	}
	return b.String()
}

func meter(v float64) string {
	return fmt.Sprintf("%3.0f", math.Round(v))
}

func renderInventory(v game.View, capacity int) string {
	ids := v.Inventory.SortedIDs()
	if len(ids) == 0 {
		return fmt.Sprintf("Your pack is empty (0/%d).", capacity)
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s x%d", displayName(id), v.Inventory.Count(id)))
	}
	return fmt.Sprintf("Pack (%d/%d): %s", v.Inventory.Units(), capacity, strings.Join(parts, ", "))
}

func renderRecipes() string {
	lines := []string{"Recipes:"}
	for _, r := range game.Recipes() {
		lines = append(lines, fmt.Sprintf("  %-10s %s -> %s", r.ID, r.CostString(), english.Plural(r.Yield, displayName(r.Output), "")))
	}
	for _, level := range []game.ShelterLevel{game.ShelterTent, game.ShelterHut, game.ShelterHouse} {
		lines = append(lines, fmt.Sprintf("  %-10s %s", level, costString(game.ShelterCost(level))))
	}
	return strings.Join(lines, "\n")
}

func renderWeather(v game.View) string {
	if v.IsNight() {
		return fmt.Sprintf("It is %s and night has fallen.", v.Weather)
	}
	return fmt.Sprintf("It is %s.", v.Weather)
}

// Clock renders game units (2400 per day) as a 24h clock.
func Clock(gameTime float64) string {
	minutes := int(gameTime / 2400 * 24 * 60)
	return fmt.Sprintf("%02d:%02d", (minutes/60)%24, minutes%60)
}

func compass(from, to game.Vec3) string {
	dx, dz := to.X-from.X, to.Z-from.Z
	var parts []string
	if math.Abs(dz) >= math.Abs(dx)/2 {
		if dz < 0 {
			parts = append(parts, "north")
		} else {
			parts = append(parts, "south")
		}
	}
	if math.Abs(dx) >= math.Abs(dz)/2 {
		if dx > 0 {
			parts = append(parts, "east")
		} else {
			parts = append(parts, "west")
		}
	}
	return strings.Join(parts, "-")
}

func displayName(id string) string {
	switch id {
	case game.ItemWaterEmpty:
		return "empty canteen"
	case game.ItemFlint:
		return "flint"
	}
	return strings.ReplaceAll(id, "_", " ")
}

func pluralize(n int, word string) string {
	return english.Plural(n, word, "")
}
