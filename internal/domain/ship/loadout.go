package ship

import (
	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
)

// Install moves a component from the inventory into a module slot.
//
// Both the ship and the inventory are returned as new values, so the move is
// observed either completely or not at all. A component already occupying
// the slot goes back to the end of the inventory, keeping every component in
// exactly one place. Performance is left stale; callers recalculate.
func Install(s Ship, inv Inventory, category component.Category, slot SlotID, componentID string) (Ship, Inventory, error) {
	if !slot.IsValid() {
		return s, inv, shared.NewInvalidSlotError(string(slot))
	}
	module, err := s.Modules.Get(category)
	if err != nil {
		return s, inv, err
	}

	_, comp, ok := inv.Find(componentID)
	if !ok {
		return s, inv, shared.NewComponentNotFoundError(componentID)
	}
	if comp.Category != module.Category {
		return s, inv, shared.NewCategoryMismatchError(comp.ID, string(comp.Category), string(module.Category))
	}

	newInv, _, err := inv.Remove(componentID)
	if err != nil {
		return s, inv, err
	}
	if displaced, occupied := module.ComponentAt(slot); occupied {
		newInv = newInv.Add(displaced)
	}

	newShip, err := s.WithModule(module.WithComponent(slot, &comp))
	if err != nil {
		return s, inv, err
	}
	return newShip, newInv, nil
}

// Remove clears a module slot and appends its component to the inventory.
// Removing from an empty slot is a no-op and reports removed=false.
func Remove(s Ship, inv Inventory, category component.Category, slot SlotID) (newShip Ship, newInv Inventory, removed bool, err error) {
	if !slot.IsValid() {
		return s, inv, false, shared.NewInvalidSlotError(string(slot))
	}
	module, err := s.Modules.Get(category)
	if err != nil {
		return s, inv, false, err
	}

	comp, occupied := module.ComponentAt(slot)
	if !occupied {
		return s, inv, false, nil
	}

	newShip, err = s.WithModule(module.WithComponent(slot, nil))
	if err != nil {
		return s, inv, false, err
	}
	return newShip, inv.Add(comp), true, nil
}

// UpdateInstalled replaces the component in a slot with fn applied to it.
// An empty slot is a no-op and reports changed=false.
func UpdateInstalled(
	s Ship,
	category component.Category,
	slot SlotID,
	fn func(component.Component) component.Component,
) (Ship, bool, error) {
	if !slot.IsValid() {
		return s, false, shared.NewInvalidSlotError(string(slot))
	}
	module, err := s.Modules.Get(category)
	if err != nil {
		return s, false, err
	}

	comp, occupied := module.ComponentAt(slot)
	if !occupied {
		return s, false, nil
	}

	updated := fn(comp)
	newShip, err := s.WithModule(module.WithComponent(slot, &updated))
	if err != nil {
		return s, false, err
	}
	return newShip, true, nil
}
