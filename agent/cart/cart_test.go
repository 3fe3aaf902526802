package cart

import (
	"math"
	"testing"

	referencex "github.com/kritsw/attendant/agent/reference"
)

var (
	bread = referencex.Item{ID: "bread_wheat", Name: "Whole Wheat Bread", Category: "bakery", Price: 3.49}
	milk  = referencex.Item{ID: "milk", Name: "Milk", Category: "dairy", Price: 2.49}
)

func TestAddMergesByItemID(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(bread, 2, "")
	c.Add(milk, 1, "")
	c.Add(bread, 1, "sliced")

	if c.Len() != 2 {
		t.Fatalf("cart length = %d, want 2", c.Len())
	}
	entries := c.Entries()
	if entries[0].Item.ID != "bread_wheat" || entries[0].Quantity != 3 {
		t.Fatalf("merged entry = %+v, want bread qty 3", entries[0])
	}
	if entries[0].Notes != "sliced" {
		t.Fatalf("notes = %q, want sliced", entries[0].Notes)
	}
	if entries[1].Item.ID != "milk" {
		t.Fatal("insertion order not preserved")
	}
}

func TestAddAppendsNotes(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(bread, 1, "sliced")
	c.Add(bread, 1, "day old is fine")

	if got, want := c.Entries()[0].Notes, "sliced; day old is fine"; got != want {
		t.Fatalf("notes = %q, want %q", got, want)
	}
}

func TestAddClampsQuantity(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(bread, 0, "")
	c.Add(milk, -3, "")

	for _, e := range c.Entries() {
		if e.Quantity != 1 {
			t.Fatalf("entry %s quantity = %d, want 1", e.Item.ID, e.Quantity)
		}
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(bread, 1, "")
	c.Add(milk, 1, "")

	if !c.Remove("bread_wheat") {
		t.Fatal("remove of present item reported false")
	}
	if c.Remove("bread_wheat") {
		t.Fatal("remove of absent item reported true")
	}
	if c.Len() != 1 || c.Entries()[0].Item.ID != "milk" {
		t.Fatalf("unexpected cart after remove: %+v", c.Entries())
	}
}

func TestTotal(t *testing.T) {
	t.Parallel()

	c := New()
	if c.Total() != 0 {
		t.Fatalf("empty cart total = %v, want 0", c.Total())
	}

	c.Add(bread, 3, "")
	c.Add(milk, 2, "")

	want := 3*3.49 + 2*2.49
	if got := c.Total(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("total = %v, want %v", got, want)
	}
	if got := c.TotalString(); got != "15.45" {
		t.Fatalf("total string = %q, want 15.45", got)
	}

	c.Remove("milk")
	if got, want := c.Total(), 3*3.49; math.Abs(got-want) > 1e-9 {
		t.Fatalf("total after remove = %v, want %v", got, want)
	}

	c.Clear()
	if c.Len() != 0 || c.Total() != 0 {
		t.Fatal("clear did not empty the cart")
	}
}

func TestRecipeResolve(t *testing.T) {
	t.Parallel()

	recipes := DefaultRecipes()

	cases := []struct {
		name  string
		dish  string
		first string
		found bool
	}{
		{"exact key", "peanut butter sandwich", "Whole Wheat Bread", true},
		{"case-insensitive", "Grilled Cheese", "Whole Wheat Bread", true},
		{"query inside key", "bolognese", "Spaghetti", true},
		{"key inside query", "I want chips and salsa tonight", "Tortilla Chips", true},
		{"unknown dish", "beef wellington", "", false},
		{"empty dish", "", "", false},
	}
	for _, tc := range cases {
		ingredients, ok := recipes.Resolve(tc.dish)
		if ok != tc.found {
			t.Fatalf("%s: found = %v, want %v", tc.name, ok, tc.found)
		}
		if tc.found && ingredients[0] != tc.first {
			t.Fatalf("%s: ingredients = %v, want first %q", tc.name, ingredients, tc.first)
		}
	}
}
