package cart

import (
	"fmt"
	"strings"

	referencex "github.com/kritsw/attendant/agent/reference"
)

// Entry is one cart line: an item, a quantity and free-text notes.
type Entry struct {
	Item     referencex.Item `json:"item"`
	Quantity int             `json:"quantity"`
	Notes    string          `json:"notes,omitempty"`
}

// Cart is an ordered sequence of entries, unique by item id. Owned by a
// single session; no locking.
type Cart struct {
	entries []Entry
}

func New() *Cart {
	return &Cart{}
}

// Add puts qty of item into the cart. If an entry for the same item already
// exists its quantity is incremented and the notes appended, preserving the
// entry's position.
func (c *Cart) Add(item referencex.Item, qty int, notes string) {
	if qty < 1 {
		qty = 1
	}
	notes = strings.TrimSpace(notes)
	for i := range c.entries {
		if c.entries[i].Item.ID == item.ID {
			c.entries[i].Quantity += qty
			if notes != "" {
				if c.entries[i].Notes != "" {
					c.entries[i].Notes += "; " + notes
				} else {
					c.entries[i].Notes = notes
				}
			}
			return
		}
	}
	c.entries = append(c.entries, Entry{Item: item, Quantity: qty, Notes: notes})
}

// Remove drops the first entry matching the item id. Returns false when the
// item is not in the cart.
func (c *Cart) Remove(itemID string) bool {
	for i := range c.entries {
		if c.entries[i].Item.ID == itemID {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Entries returns the cart lines in insertion order.
func (c *Cart) Entries() []Entry {
	return c.entries
}

func (c *Cart) Len() int {
	return len(c.entries)
}

// Total is the invariant sum of price times quantity over all entries.
func (c *Cart) Total() float64 {
	var total float64
	for _, e := range c.entries {
		total += e.Item.Price * float64(e.Quantity)
	}
	return total
}

// TotalString formats the total to two decimal places for speech output.
func (c *Cart) TotalString() string {
	return fmt.Sprintf("%.2f", c.Total())
}

// Clear empties the cart after a successful order.
func (c *Cart) Clear() {
	c.entries = nil
}
