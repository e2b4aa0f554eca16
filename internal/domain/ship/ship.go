package ship

import (
	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
)

// Modules holds exactly one module per category
type Modules struct {
	Engine Module `json:"engine"`
	Shield Module `json:"shield"`
	Power  Module `json:"power"`
}

// Get returns the module for a category
func (m Modules) Get(category component.Category) (Module, error) {
	switch category {
	case component.CategoryEngine:
		return m.Engine, nil
	case component.CategoryShield:
		return m.Shield, nil
	case component.CategoryPower:
		return m.Power, nil
	}
	return Module{}, shared.NewInvalidCategoryError(string(category))
}

// With returns a copy with the module for its category replaced
func (m Modules) With(module Module) (Modules, error) {
	switch module.Category {
	case component.CategoryEngine:
		m.Engine = module
	case component.CategoryShield:
		m.Shield = module
	case component.CategoryPower:
		m.Power = module
	default:
		return m, shared.NewInvalidCategoryError(string(module.Category))
	}
	return m, nil
}

// All returns the modules in evaluation order
func (m Modules) All() []Module {
	return []Module{m.Engine, m.Shield, m.Power}
}

// Ship is the player's vessel.
//
// Performance and Status are derived data: they are only ever replaced by
// the performance calculator, never set independently.
type Ship struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Modules     Modules         `json:"modules"`
	Performance ShipPerformance `json:"performance"`
	Status      StatusFlags     `json:"status"`
}

// NewShip creates a ship with three empty modules
func NewShip(id, name string, engineID, shieldID, powerID string) (Ship, error) {
	s := Ship{
		ID:   id,
		Name: name,
		Modules: Modules{
			Engine: NewEmptyModule(engineID, component.CategoryEngine),
			Shield: NewEmptyModule(shieldID, component.CategoryShield),
			Power:  NewEmptyModule(powerID, component.CategoryPower),
		},
	}
	if err := s.Validate(); err != nil {
		return Ship{}, err
	}
	return s, nil
}

// Validate checks the ship and every module
func (s Ship) Validate() error {
	if s.ID == "" {
		return shared.NewValidationError("id", "cannot be empty")
	}
	if s.Name == "" {
		return shared.NewValidationError("name", "cannot be empty")
	}
	for _, category := range component.Categories {
		module, _ := s.Modules.Get(category)
		if module.Category != category {
			return shared.NewValidationError("modules", "module in the "+string(category)+" position has category "+string(module.Category))
		}
		if err := module.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// WithModule returns a copy of the ship with one module replaced
func (s Ship) WithModule(module Module) (Ship, error) {
	modules, err := s.Modules.With(module)
	if err != nil {
		return s, err
	}
	s.Modules = modules
	return s, nil
}

// FindInstalled locates an installed component anywhere on the ship
func (s Ship) FindInstalled(componentID string) (component.Category, SlotID, component.Component, bool) {
	for _, module := range s.Modules.All() {
		if slot, comp, ok := module.FindComponent(componentID); ok {
			return module.Category, slot, comp, true
		}
	}
	return "", "", component.Component{}, false
}
