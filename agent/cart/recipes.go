package cart

import (
	"sort"
	"strings"
)

// RecipeBook maps dish names to the catalog item names that make them up.
type RecipeBook map[string][]string

// DefaultRecipes covers the built-in catalog.
func DefaultRecipes() RecipeBook {
	return RecipeBook{
		"peanut butter sandwich": {"Whole Wheat Bread", "Peanut Butter", "Strawberry Jam"},
		"spaghetti bolognese":    {"Spaghetti", "Tomato Sauce", "Ground Beef"},
		"grilled cheese":         {"Whole Wheat Bread", "Cheddar Cheese", "Butter"},
		"chips and salsa":        {"Tortilla Chips", "Salsa"},
	}
}

// Resolve finds the ingredient list for a dish: exact case-insensitive key
// first, then the first key that contains the query or is contained by it.
// Returns false when no recipe is known; callers must report no-recipe rather
// than guess.
func (r RecipeBook) Resolve(dish string) ([]string, bool) {
	q := strings.ToLower(strings.TrimSpace(dish))
	if q == "" {
		return nil, false
	}
	if ingredients, ok := r[q]; ok {
		return ingredients, true
	}
	// Sorted key order keeps substring resolution deterministic.
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if strings.Contains(key, q) || strings.Contains(q, key) {
			return r[key], true
		}
	}
	return nil, false
}
