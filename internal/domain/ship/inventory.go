package ship

import (
	"slices"

	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
)

// Inventory is the ordered collection of components not installed on the ship.
// Methods never modify the receiver's backing array.
type Inventory []component.Component

// Find returns the index and value of a component by ID
func (inv Inventory) Find(componentID string) (int, component.Component, bool) {
	for i, c := range inv {
		if c.ID == componentID {
			return i, c, true
		}
	}
	return -1, component.Component{}, false
}

// Add returns a new inventory with c appended
func (inv Inventory) Add(c ...component.Component) Inventory {
	out := make(Inventory, 0, len(inv)+len(c))
	out = append(out, inv...)
	return append(out, c...)
}

// Remove returns a new inventory without the component and the removed value
func (inv Inventory) Remove(componentID string) (Inventory, component.Component, error) {
	i, c, ok := inv.Find(componentID)
	if !ok {
		return inv, component.Component{}, shared.NewComponentNotFoundError(componentID)
	}
	out := make(Inventory, 0, len(inv)-1)
	out = append(out, inv[:i]...)
	out = append(out, inv[i+1:]...)
	return out, c, nil
}

// Replace returns a new inventory with the component sharing c's ID swapped for c
func (inv Inventory) Replace(c component.Component) (Inventory, error) {
	i, _, ok := inv.Find(c.ID)
	if !ok {
		return inv, shared.NewComponentNotFoundError(c.ID)
	}
	out := slices.Clone(inv)
	out[i] = c
	return out, nil
}

// OfCategory returns the components belonging to category
func (inv Inventory) OfCategory(category component.Category) Inventory {
	out := Inventory{}
	for _, c := range inv {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}
