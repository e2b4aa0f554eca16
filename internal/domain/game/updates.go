package game

import (
	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	"github.com/andrescamacho/mekanik-go/internal/domain/performance"
	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
)

// Recalculate refreshes every derived field on the ship
func Recalculate(s State) State {
	s.Ship = performance.Recalculate(s.Ship)
	return s
}

// InstallComponent moves an inventory component into a slot and recalculates.
// A component already in the slot is swapped back into the inventory.
func InstallComponent(s State, category component.Category, slot ship.SlotID, componentID string) (State, error) {
	newShip, newInv, err := ship.Install(s.Ship, s.Inventory, category, slot, componentID)
	if err != nil {
		return s, err
	}
	s.Ship = newShip
	s.Inventory = newInv
	return Recalculate(s), nil
}

// RemoveComponent moves a slot's component back to the inventory and
// recalculates. An empty slot leaves the state unchanged.
func RemoveComponent(s State, category component.Category, slot ship.SlotID) (State, error) {
	newShip, newInv, removed, err := ship.Remove(s.Ship, s.Inventory, category, slot)
	if err != nil || !removed {
		return s, err
	}
	s.Ship = newShip
	s.Inventory = newInv
	return Recalculate(s), nil
}

// RepairComponent raises an installed component's durability by amount
func RepairComponent(s State, category component.Category, slot ship.SlotID, amount float64) (State, error) {
	return updateInstalled(s, category, slot, func(c component.Component) component.Component {
		return c.Repair(amount)
	})
}

// DamageComponent lowers an installed component's durability by amount
func DamageComponent(s State, category component.Category, slot ship.SlotID, amount float64) (State, error) {
	return updateInstalled(s, category, slot, func(c component.Component) component.Component {
		return c.Damage(amount)
	})
}

func updateInstalled(s State, category component.Category, slot ship.SlotID, fn func(component.Component) component.Component) (State, error) {
	newShip, changed, err := ship.UpdateInstalled(s.Ship, category, slot, fn)
	if err != nil || !changed {
		return s, err
	}
	s.Ship = newShip
	return Recalculate(s), nil
}

// RepairInventoryComponent repairs a component that is not installed
func RepairInventoryComponent(s State, componentID string, amount float64) (State, error) {
	_, c, ok := s.Inventory.Find(componentID)
	if !ok {
		return s, shared.NewComponentNotFoundError(componentID)
	}
	inv, err := s.Inventory.Replace(c.Repair(amount))
	if err != nil {
		return s, err
	}
	s.Inventory = inv
	return s, nil
}

// AddToInventory appends a component the player does not already own
func AddToInventory(s State, c component.Component) (State, error) {
	if err := c.Validate(); err != nil {
		return s, err
	}
	if s.Owns(c.ID) {
		return s, shared.NewValidationError("component", "component "+c.ID+" is already owned")
	}
	s.Inventory = s.Inventory.Add(c)
	return s, nil
}

// RemoveFromInventory discards an inventory component
func RemoveFromInventory(s State, componentID string) (State, error) {
	inv, _, err := s.Inventory.Remove(componentID)
	if err != nil {
		return s, err
	}
	s.Inventory = inv
	return s, nil
}

// AddCredits adds to the balance. Negative amounts are ignored.
func AddCredits(s State, amount int) State {
	if amount > 0 {
		s.Credits += amount
	}
	return s
}

// SubtractCredits lowers the balance, never below zero
func SubtractCredits(s State, amount int) State {
	if amount > 0 {
		s.Credits = max(0, s.Credits-amount)
	}
	return s
}

// TickGameTime advances the game clock
func TickGameTime(s State, amount float64) State {
	if amount > 0 {
		s.GameTime += amount
	}
	return s
}

// CompleteMission marks a mission completed and pays its rewards: credits,
// player experience, and any reward components appended to the inventory.
func CompleteMission(s State, missionID string) (State, error) {
	i, m, err := s.FindMission(missionID)
	if err != nil {
		return s, err
	}
	completed, err := m.Complete()
	if err != nil {
		return s, err
	}

	for _, c := range completed.Rewards.Components {
		if s.Owns(c.ID) {
			return s, shared.NewValidationError("rewards", "reward component "+c.ID+" is already owned")
		}
	}

	s = s.withMission(i, completed)
	s = AddCredits(s, completed.Rewards.Credits)
	s.Player = s.Player.GainExperience(completed.Rewards.Experience)
	if len(completed.Rewards.Components) > 0 {
		s.Inventory = s.Inventory.Add(completed.Rewards.Components...)
	}
	return s, nil
}

// EvaluateObjectives ticks off the mission objectives the ship's current
// performance satisfies and reports how many changed
func EvaluateObjectives(s State, missionID string) (State, int, error) {
	i, m, err := s.FindMission(missionID)
	if err != nil {
		return s, 0, err
	}
	evaluated, n := m.EvaluateObjectives(s.Ship.Performance)
	if n == 0 {
		return s, 0, nil
	}
	return s.withMission(i, evaluated), n, nil
}
