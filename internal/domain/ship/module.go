package ship

import (
	"maps"

	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
)

// SlotID identifies one of a module's fixed component slots
type SlotID string

const (
	Slot1 SlotID = "slot1"
	Slot2 SlotID = "slot2"
	Slot3 SlotID = "slot3"
)

// Slots lists every slot in evaluation order
var Slots = []SlotID{Slot1, Slot2, Slot3}

// ParseSlot converts user input into a SlotID
func ParseSlot(s string) (SlotID, error) {
	slot := SlotID(s)
	if !slot.IsValid() {
		return "", shared.NewInvalidSlotError(s)
	}
	return slot, nil
}

func (s SlotID) IsValid() bool {
	switch s {
	case Slot1, Slot2, Slot3:
		return true
	}
	return false
}

// Components maps each slot to its installed component (nil when empty)
type Components map[SlotID]*component.Component

// Installed returns the installed components in slot order
func (c Components) Installed() []component.Component {
	installed := make([]component.Component, 0, len(Slots))
	for _, slot := range Slots {
		if comp := c[slot]; comp != nil {
			installed = append(installed, *comp)
		}
	}
	return installed
}

// Module is one of the ship's three subsystems.
//
// Invariants:
// - Components always has exactly the keys slot1, slot2 and slot3
// - Every installed component has the module's category
// - Performance is replaced wholesale by the calculator, never patched
type Module struct {
	ID          string             `json:"id"`
	Category    component.Category `json:"type"`
	Health      float64            `json:"health"`
	Efficiency  float64            `json:"efficiency"`
	Components  Components         `json:"components"`
	Performance ModulePerformance  `json:"performance"`
}

// NewEmptyModule creates a module with all slots empty and zeroed performance
func NewEmptyModule(id string, category component.Category) Module {
	components := make(Components, len(Slots))
	for _, slot := range Slots {
		components[slot] = nil
	}
	return Module{
		ID:         id,
		Category:   category,
		Health:     100,
		Efficiency: 100,
		Components: components,
	}
}

// Installed returns the installed components in slot order
func (m Module) Installed() []component.Component {
	return m.Components.Installed()
}

// ComponentAt returns the component installed in slot, if any
func (m Module) ComponentAt(slot SlotID) (component.Component, bool) {
	comp := m.Components[slot]
	if comp == nil {
		return component.Component{}, false
	}
	return *comp, true
}

// FindComponent locates an installed component by ID
func (m Module) FindComponent(componentID string) (SlotID, component.Component, bool) {
	for _, slot := range Slots {
		if comp := m.Components[slot]; comp != nil && comp.ID == componentID {
			return slot, *comp, true
		}
	}
	return "", component.Component{}, false
}

// WithComponent returns a copy of the module with slot set to comp (nil clears
// it). Only the slot map is copied; the receiver is left untouched.
func (m Module) WithComponent(slot SlotID, comp *component.Component) Module {
	components := make(Components, len(Slots))
	maps.Copy(components, m.Components)
	if comp != nil {
		c := *comp
		comp = &c
	}
	components[slot] = comp
	m.Components = components
	return m
}

// WithPerformance returns a copy of the module carrying p
func (m Module) WithPerformance(p ModulePerformance) Module {
	m.Performance = p
	return m
}

// Validate checks the fixed slot layout and category membership
func (m Module) Validate() error {
	if !m.Category.IsValid() {
		return shared.NewInvalidCategoryError(string(m.Category))
	}
	if len(m.Components) != len(Slots) {
		return shared.NewValidationError("components", "module must have exactly slot1, slot2 and slot3")
	}
	for slot, comp := range m.Components {
		if !slot.IsValid() {
			return shared.NewInvalidSlotError(string(slot))
		}
		if comp == nil {
			continue
		}
		if comp.Category != m.Category {
			return shared.NewCategoryMismatchError(comp.ID, string(comp.Category), string(m.Category))
		}
		if err := comp.Validate(); err != nil {
			return err
		}
	}
	return nil
}
