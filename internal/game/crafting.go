package game

import (
	"fmt"
	"sort"
	"strings"
)

type Recipe struct {
	ID     string         `json:"id"`
	Cost   map[string]int `json:"cost"`
	Output string         `json:"output"`
	Yield  int            `json:"yield"`
}

func (r Recipe) CostString() string {
	ids := make([]string, 0, len(r.Cost))
	for id := range r.Cost {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d %s", r.Cost[id], id))
	}
	return strings.Join(parts, ", ")
}

// Recipes is the crafting catalog, ordered as it appears in the hotbar.
func Recipes() []Recipe {
	return []Recipe{
		{ID: ItemWater, Cost: map[string]int{ItemWood: 5, ItemStone: 5}, Output: ItemWater, Yield: 1},
		{ID: ItemCampfire, Cost: map[string]int{ItemWood: 5, ItemStone: 5}, Output: ItemCampfire, Yield: 1},
		{ID: ItemTorch, Cost: map[string]int{ItemWood: 2}, Output: ItemTorch, Yield: 1},
		{ID: ItemBow, Cost: map[string]int{ItemWood: 5}, Output: ItemBow, Yield: 1},
		{ID: ItemArrow, Cost: map[string]int{ItemWood: 1, ItemStone: 1}, Output: ItemArrow, Yield: 5},
	}
}

func RecipeByID(id string) (Recipe, bool) {
	for _, r := range Recipes() {
		if r.ID == id {
			return r, true
		}
	}
	return Recipe{}, false
}

// shelterCost is what reaching level costs, tent from scratch or an upgrade.
func shelterCost(level ShelterLevel) (map[string]int, bool) {
	switch level {
	case ShelterTent:
		return map[string]int{ItemWood: 10}, true
	case ShelterHut:
		return map[string]int{ItemWood: 20, ItemStone: 10}, true
	case ShelterHouse:
		return map[string]int{ItemWood: 40, ItemStone: 25}, true
	default:
		return nil, false
	}
}

// ShelterCost exposes the material cost of a shelter level.
func ShelterCost(level ShelterLevel) map[string]int {
	cost, _ := shelterCost(level)
	return cost
}

// Craft spends the recipe cost and adds its output.
func (s *Simulation) Craft(recipeID string) bool {
	var ok bool
	s.mutate(func() {
		ok = s.craft(recipeID)
	})
	return ok
}

func (s *Simulation) craft(recipeID string) bool {
	if !s.canAct() {
		return false
	}
	recipe, found := RecipeByID(recipeID)
	if !found {
		s.notify(SeverityWarning, msgUnknownRecipe, recipeID)
		return false
	}
	if !s.state.Inventory.has(recipe.Cost) {
		s.notify(SeverityWarning, msgMissingMaterial, recipe.ID)
		return false
	}
	for id, n := range recipe.Cost {
		s.state.Inventory.remove(id, n)
	}
	s.state.Inventory.add(recipe.Output, recipe.Yield)
	s.notify(SeveritySuccess, msgCrafted, recipe.ID)
	return true
}
