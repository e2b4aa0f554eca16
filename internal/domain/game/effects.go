package game

import (
	"fmt"
	"math"

	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
)

// ActivateEffect applies one of an installed component's special effects
func ActivateEffect(s State, componentID, effectID string) (State, error) {
	_, _, c, ok := s.Ship.FindInstalled(componentID)
	if !ok {
		return s, shared.NewComponentNotFoundError(componentID)
	}
	effect, ok := c.FindEffect(effectID)
	if !ok {
		return s, shared.NewEffectNotFoundError(componentID, effectID)
	}
	return ApplyEffect(s, effect)
}

// ApplyEffect dispatches on the effect kind. Effects that touch the ship
// recalculate it before returning.
func ApplyEffect(s State, effect component.Effect) (State, error) {
	switch effect.Kind {
	case component.EffectRepairInstalled:
		return repairWhere(s, effect.Magnitude, func(component.Component) bool { return true })
	case component.EffectVentHeat:
		return repairWhere(s, effect.Magnitude, component.Component.IsCoolant)
	case component.EffectGrantCredits:
		return AddCredits(s, int(math.Round(effect.Magnitude))), nil
	case component.EffectGrantExperience:
		s.Player = s.Player.GainExperience(int(math.Round(effect.Magnitude)))
		return s, nil
	}
	return s, shared.NewValidationError("effect", fmt.Sprintf("unsupported effect kind %q", effect.Kind))
}

func repairWhere(s State, amount float64, match func(component.Component) bool) (State, error) {
	updated := s.Ship
	for _, m := range s.Ship.Modules.All() {
		for _, slot := range ship.Slots {
			c, ok := m.ComponentAt(slot)
			if !ok || !match(c) {
				continue
			}
			var err error
			updated, _, err = ship.UpdateInstalled(updated, m.Category, slot, func(c component.Component) component.Component {
				return c.Repair(amount)
			})
			if err != nil {
				return s, err
			}
		}
	}
	s.Ship = updated
	return Recalculate(s), nil
}
