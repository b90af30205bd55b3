package console

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/appengine-ltd/wildlands/internal/game"
	"github.com/appengine-ltd/wildlands/internal/parser"
	"github.com/appengine-ltd/wildlands/internal/store"
)

const (
	defaultStride = 5.0
	maxStride     = 50.0
	worldEdge     = 100.0
	arrowSpeed    = 20.0
	arrowHitReach = 1.5
	maxWait       = 1440
	placeAhead    = 2.0
)

// approach walks the player to within reach of target, stopping short of it.
func (c *Console) approach(v game.View, target game.Vec3, reach float64) float64 {
	dist := v.PlayerPosition.PlanarDistance(target)
	if dist <= reach {
		return 0
	}
	heading := game.HeadingTo(v.PlayerPosition, target)
	stop := target.Sub(heading.Scale(reach * 0.5))
	stop.Y = v.PlayerPosition.Y
	c.sim.SetPlayerPosition(stop)
	return dist
}

func (c *Console) executeHarvest(v game.View, kindArg string) Result {
	kinds := game.ResourceKinds()
	if kindArg != "" {
		kind := game.ResourceKind(kindArg)
		if !isResourceKind(kind) {
			return Result{Handled: true, Message: fmt.Sprintf("There is nothing called %q to harvest.", kindArg)}
		}
		kinds = []game.ResourceKind{kind}
	}

	var (
		best     game.Resource
		bestKind game.ResourceKind
		bestDist = math.Inf(1)
	)
	for _, kind := range kinds {
		if r, d, ok := v.NearestResource(kind, v.PlayerPosition); ok && d < bestDist {
			best, bestKind, bestDist = r, kind, d
		}
	}
	if math.IsInf(bestDist, 1) {
		return Result{Handled: true, Message: "Nothing left to harvest here. Wait for the land to recover."}
	}

	walked := c.approach(v, best.Position, c.sim.Tuning().InteractRadius)
	res := c.sim.Harvest(bestKind, best.ID)
	var b strings.Builder
	if walked > 0 {
		fmt.Fprintf(&b, "You walk %.0f m to a %s. ", walked, bestKind)
	}
	if !res.OK {
		b.WriteString("You could not harvest it.")
		return Result{Handled: true, Message: b.String()}
	}
	fmt.Fprintf(&b, "You harvest the %s.", bestKind)
	if res.Depleted {
		fmt.Fprintf(&b, " The %s is spent.", bestKind)
	} else if dur, idx := nodeDurability(c.sim.View(), bestKind, best.ID); idx >= 0 {
		fmt.Fprintf(&b, " (%.0f%% left)", dur)
	}
	return Result{Handled: true, Message: b.String()}
}

func isResourceKind(kind game.ResourceKind) bool {
	for _, k := range game.ResourceKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

func nodeDurability(v game.View, kind game.ResourceKind, id string) (float64, int) {
	var list []game.Resource
	switch kind {
	case game.ResourceTree:
		list = v.Resources.Trees
	case game.ResourceRock:
		list = v.Resources.Rocks
	case game.ResourceBush:
		list = v.Resources.Bushes
	}
	for i, r := range list {
		if r.ID == id {
			return r.Durability, i
		}
	}
	return 0, -1
}

func (c *Console) executeHunt(v game.View, speciesArg string) Result {
	var (
		target game.Animal
		dist   = math.Inf(1)
	)
	for _, a := range v.Wildlife {
		if speciesArg != "" && string(a.Species) != speciesArg {
			continue
		}
		if d := v.PlayerPosition.PlanarDistance(a.Position); d < dist {
			target, dist = a, d
		}
	}
	if math.IsInf(dist, 1) {
		return Result{Handled: true, Message: "No game in sight."}
	}
	reach := c.sim.Tuning().InteractRadius
	if dist > reach {
		return Result{Handled: true, Message: fmt.Sprintf(
			"The nearest %s is %.0f m away, heading %s. Get within %.0f m or shoot %.0f %.0f.",
			target.Species, dist, compass(v.PlayerPosition, target.Position), reach,
			target.Position.X-v.PlayerPosition.X, target.Position.Z-v.PlayerPosition.Z)}
	}
	c.sim.KillWildlife(target.ID)
	return Result{Handled: true, Message: fmt.Sprintf("You bring down the %s.", target.Species)}
}

// executeShoot resolves a shot instantly: the arrow lands at the offset
// and lodges in any animal standing within reach of that point.
func (c *Console) executeShoot(v game.View, args []string) Result {
	if len(args) < 2 {
		return Result{Handled: true, Message: "Usage: shoot <dx> <dz>"}
	}
	dx, errX := strconv.ParseFloat(args[0], 64)
	dz, errZ := strconv.ParseFloat(args[1], 64)
	if errX != nil || errZ != nil || math.IsNaN(dx) || math.IsNaN(dz) {
		return Result{Handled: true, Message: "Offsets must be numbers, e.g. shoot 10 -4"}
	}
	from := v.PlayerPosition.Add(game.Vec3{Y: 1.5})
	landing := game.Vec3{X: v.PlayerPosition.X + dx, Z: v.PlayerPosition.Z + dz}
	velocity := game.HeadingTo(from, landing).Scale(arrowSpeed)

	id, ok := c.sim.ShootArrow(from, velocity, game.Vec3{Y: math.Atan2(dx, dz)})
	if !ok {
		return Result{Handled: true, Message: "You cannot shoot."}
	}

	var hit *game.Animal
	best := arrowHitReach
	for i, a := range v.Wildlife {
		if d := landing.PlanarDistance(a.Position); d <= best {
			hit, best = &v.Wildlife[i], d
		}
	}
	if hit == nil {
		c.sim.StickArrow(id, landing, game.Vec3{}, "")
		return Result{Handled: true, Message: fmt.Sprintf("The arrow thuds into the ground %.0f m away.", math.Hypot(dx, dz))}
	}
	if c.sim.ArrowHit(id, hit.Position.Add(game.Vec3{Y: 0.5}), game.Vec3{}, hit.ID) {
		return Result{Handled: true, Message: fmt.Sprintf("A clean shot. The %s falls.", hit.Species)}
	}
	return Result{Handled: true, Message: fmt.Sprintf("You wound the %s.", hit.Species)}
}

var eatPreference = []string{game.ItemCookedMeat, game.ItemBakedApple, game.ItemMeat, game.ItemApple}

func (c *Console) executeEat(v game.View, itemArg string) Result {
	item := resolveItem(v, itemArg)
	if item == "" {
		for _, candidate := range eatPreference {
			if v.Inventory.Count(candidate) > 0 {
				item = candidate
				break
			}
		}
	}
	if item == "" {
		return Result{Handled: true, Message: "You have nothing to eat."}
	}
	if item == game.ItemWater {
		return c.executeDrink(v, item)
	}
	if !c.sim.ConsumeItem(item) {
		return Result{Handled: true}
	}
	return Result{Handled: true, Message: fmt.Sprintf("You eat the %s.", displayName(item))}
}

func (c *Console) executeDrink(v game.View, itemArg string) Result {
	item := resolveItem(v, itemArg)
	if item == "" {
		item = game.ItemWater
	}
	if !c.sim.ConsumeItem(item) {
		return Result{Handled: true}
	}
	return Result{Handled: true, Message: fmt.Sprintf("You drink. Thirst %.0f.", c.sim.View().Vitals.Thirst)}
}

// nearHeat reports whether the player stands by a burning campfire or in
// reach of a shelter hearth.
func (c *Console) nearHeat(v game.View) bool {
	t := c.sim.Tuning()
	if _, d, ok := v.NearestActiveCampfire(v.PlayerPosition); ok && d <= t.InteractRadius {
		return true
	}
	_, d, ok := v.NearestShelter(v.PlayerPosition)
	return ok && d <= t.ShelterRadius
}

func (c *Console) executeCook(v game.View, itemArg string) Result {
	if !c.nearHeat(v) {
		return Result{Handled: true, Message: "You need to be by a campfire or shelter to cook."}
	}
	if itemArg == "" {
		cooked, ok := c.sim.CookBest()
		if !ok {
			return Result{Handled: true}
		}
		return Result{Handled: true, Message: fmt.Sprintf("Over the fire: %s.", displayName(cooked))}
	}
	item := resolveItem(v, itemArg)
	if item == "" {
		item = itemArg
	}
	c.sim.CookItem(item)
	return Result{Handled: true}
}

func (c *Console) executeFill() Result {
	if n := c.sim.FillWater(); n > 0 {
		return Result{Handled: true, Message: fmt.Sprintf("You fill %s.", pluralize(n, "canteen"))}
	}
	return Result{Handled: true}
}

func (c *Console) executeCraft(recipeArg string, q *parser.Quantity) Result {
	recipe, ok := game.RecipeByID(recipeArg)
	if !ok {
		c.sim.Craft(recipeArg)
		return Result{Handled: true}
	}
	times := 1
	if q != nil && q.Unit == "count" && q.N > 1 {
		times = min(q.N, 20)
	}
	made := 0
	for i := 0; i < times; i++ {
		if !c.sim.Craft(recipe.ID) {
			break
		}
		made++
	}
	if made == 0 {
		return Result{Handled: true, Message: fmt.Sprintf("%s needs %s.", displayName(recipe.ID), recipe.CostString())}
	}
	return Result{Handled: true, Message: fmt.Sprintf("Crafted %s.", pluralize(made*recipe.Yield, displayName(recipe.Output)))}
}

func (c *Console) executePlace(v game.View, what string) Result {
	if what != "" && what != game.ItemCampfire {
		return Result{Handled: true, Message: "Only a campfire can be placed from the console."}
	}
	pos := ahead(v.PlayerPosition, placeAhead)
	if _, ok := c.sim.DeployCampfire(pos); !ok {
		return Result{Handled: true, Message: fmt.Sprintf("Craft one first (%s).", mustRecipe(game.ItemCampfire).CostString())}
	}
	return Result{Handled: true, Message: "The campfire crackles to life beside you."}
}

func (c *Console) executeShelter(v game.View, action string) Result {
	switch action {
	case "", "build":
		if sh, d, ok := v.NearestShelter(v.PlayerPosition); ok && d <= c.sim.Tuning().ShelterRadius && action == "" {
			return Result{Handled: true, Message: fmt.Sprintf("You are next to a %s. Try shelter upgrade.", sh.Level)}
		}
		if _, ok := c.sim.BuildShelter(ahead(v.PlayerPosition, placeAhead)); !ok {
			return Result{Handled: true, Message: fmt.Sprintf("A tent needs %s.", costString(game.ShelterCost(game.ShelterTent)))}
		}
		return Result{Handled: true, Message: "You pitch a tent."}
	case "upgrade":
		sh, d, ok := v.NearestShelter(v.PlayerPosition)
		if !ok || d > c.sim.Tuning().ShelterRadius {
			return Result{Handled: true, Message: "There is no shelter within reach."}
		}
		if !c.sim.UpgradeShelter(sh.ID) {
			return Result{Handled: true}
		}
		return Result{Handled: true, Message: "Your shelter is sturdier now."}
	default:
		return Result{Handled: true, Message: "Usage: shelter build|upgrade"}
	}
}

var directions = map[string]game.Vec3{
	"north": {Z: -1},
	"south": {Z: 1},
	"east":  {X: 1},
	"west":  {X: -1},
}

func (c *Console) executeGo(v game.View, dir string, q *parser.Quantity) Result {
	step, ok := directions[dir]
	if !ok {
		return Result{Handled: true, Message: "Usage: go <n|s|e|w> [units]"}
	}
	stride := defaultStride
	if q != nil && q.Unit == "count" && q.N > 0 {
		stride = math.Min(float64(q.N), maxStride)
	}
	dest := v.PlayerPosition.Add(step.Scale(stride))
	dest.X = math.Max(-worldEdge, math.Min(worldEdge, dest.X))
	dest.Z = math.Max(-worldEdge, math.Min(worldEdge, dest.Z))
	c.sim.SetPlayerPosition(dest)
	return Result{Handled: true, Message: fmt.Sprintf("You head %s to (%.0f, %.0f).", dir, dest.X, dest.Z)}
}

func (c *Console) executeTorch(v game.View, state string) Result {
	lit := !v.TorchLit
	switch state {
	case "on":
		lit = true
	case "off":
		lit = false
	}
	c.sim.SetTorchLit(lit)
	after := c.sim.View()
	if after.TorchLit {
		return Result{Handled: true, Message: fmt.Sprintf("Torch lit (%.0f%% left).", after.TorchFuel*100)}
	}
	if lit {
		return Result{Handled: true}
	}
	return Result{Handled: true, Message: "Torch stowed."}
}

func (c *Console) executeSleep() Result {
	c.sim.Sleep()
	if c.sim.Phase() != game.PhaseSleeping {
		return Result{Handled: true, Message: "You cannot sleep right now."}
	}
	return Result{Handled: true, Message: "You lie down and close your eyes..."}
}

// executeWait fast-forwards the simulation in one-second steps.
func (c *Console) executeWait(q *parser.Quantity) Result {
	seconds := 10
	if q != nil {
		switch q.Unit {
		case "minutes":
			seconds = q.N * 60
		case "count", "seconds":
			seconds = q.N
		}
	}
	if seconds <= 0 {
		return Result{Handled: true, Message: "Usage: wait <seconds>"}
	}
	seconds = min(seconds, maxWait)
	if c.sim.Phase() != game.PhaseRunning {
		return Result{Handled: true, Message: fmt.Sprintf("Time stands still while %s.", c.sim.Phase())}
	}
	for i := 0; i < seconds && c.sim.Phase() == game.PhaseRunning; i++ {
		c.sim.Tick(1)
	}
	v := c.sim.View()
	return Result{Handled: true, Message: fmt.Sprintf("You wait %s. It is now %s on the %s day.",
		pluralize(seconds, "second"), Clock(v.GameTime), humanize.Ordinal(v.Day))}
}

func (c *Console) executeLanguage(lang string) Result {
	for _, l := range game.Languages() {
		if l == lang {
			c.sim.SetLanguage(lang)
			return Result{Handled: true, Message: fmt.Sprintf("Language set to %s.", lang)}
		}
	}
	return Result{Handled: true, Message: fmt.Sprintf("Supported languages: %s", strings.Join(game.Languages(), ", "))}
}

func (c *Console) executeSave(ctx context.Context, slot string) Result {
	if c.store == nil {
		return Result{Handled: true, Message: "Saving is disabled in this session."}
	}
	slot, err := store.NormalizeSlot(slot)
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	if err := c.store.Save(ctx, slot, c.sim.Snapshot()); err != nil {
		c.log.Errorf("save %s: %v", slot, err)
		return Result{Handled: true, Message: fmt.Sprintf("Save failed: %v", err)}
	}
	return Result{Handled: true, Message: fmt.Sprintf("Saved to slot %s.", slot)}
}

func (c *Console) executeLoad(ctx context.Context, slot string) Result {
	if c.store == nil {
		return Result{Handled: true, Message: "Loading is disabled in this session."}
	}
	slot, err := store.NormalizeSlot(slot)
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	data, err := c.store.Load(ctx, slot)
	if errors.Is(err, store.ErrNotFound) {
		return Result{Handled: true, Message: fmt.Sprintf("No save in slot %s.", slot)}
	}
	if err != nil {
		c.log.Errorf("load %s: %v", slot, err)
		return Result{Handled: true, Message: fmt.Sprintf("Load failed: %v", err)}
	}
	if err := c.sim.RestoreJSON(data); err != nil {
		c.log.Errorf("restore %s: %v", slot, err)
		return Result{Handled: true, Message: fmt.Sprintf("Load failed: %v", err)}
	}
	v := c.sim.View()
	return Result{Handled: true, Message: fmt.Sprintf("Loaded slot %s: %s day, %s.", slot, humanize.Ordinal(v.Day), Clock(v.GameTime))}
}

func (c *Console) executeListSaves(ctx context.Context) Result {
	if c.store == nil {
		return Result{Handled: true, Message: "Saving is disabled in this session."}
	}
	slots, err := c.store.List(ctx)
	if err != nil {
		return Result{Handled: true, Message: fmt.Sprintf("Could not list saves: %v", err)}
	}
	if len(slots) == 0 {
		return Result{Handled: true, Message: "No saves yet."}
	}
	lines := make([]string, 0, len(slots)+1)
	lines = append(lines, "Saves:")
	for _, s := range slots {
		lines = append(lines, fmt.Sprintf("  %-12s %s day, saved %s", s.Slot, humanize.Ordinal(s.Day), humanize.Time(s.SavedAt)))
	}
	return Result{Handled: true, Message: strings.Join(lines, "\n")}
}

// resolveItem maps a parsed (lowercased) name back onto a held item id.
func resolveItem(v game.View, name string) string {
	if name == "" {
		return ""
	}
	for _, id := range v.Inventory.SortedIDs() {
		if strings.EqualFold(id, name) {
			return id
		}
	}
	for _, id := range game.Consumables() {
		if strings.EqualFold(id, name) {
			return id
		}
	}
	return ""
}

func ahead(pos game.Vec3, d float64) game.Vec3 {
	return game.Vec3{X: pos.X, Y: 0, Z: pos.Z - d}
}

func mustRecipe(id string) game.Recipe {
	r, _ := game.RecipeByID(id)
	return r
}

func costString(cost map[string]int) string {
	return game.Recipe{Cost: cost}.CostString()
}
