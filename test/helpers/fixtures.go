package helpers

import (
	"testing"

	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	"github.com/andrescamacho/mekanik-go/internal/domain/game"
	"github.com/andrescamacho/mekanik-go/internal/domain/mission"
	"github.com/andrescamacho/mekanik-go/internal/domain/player"
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
)

// NewTestComponent builds a pristine component with the given stats
func NewTestComponent(id, name string, subtype component.Subtype, power, consumption, heat float64) component.Component {
	return component.Component{
		ID:       id,
		Name:     name,
		Category: subtype.Category(),
		Subtype:  subtype,
		Rarity:   component.RarityCommon,
		Properties: component.Properties{
			PowerRating:       power,
			EnergyConsumption: consumption,
			HeatGeneration:    heat,
			Mass:              100,
			SizeClass:         component.SizeM,
		},
	}.WithDurability(100)
}

// NewTestGame builds a small game: an empty ship, an engine core, a coolant
// system, a shield projector and a reactor in the inventory, and one mission
func NewTestGame(t *testing.T) game.State {
	t.Helper()
	p, err := player.NewPlayer("player-1", "Rookie Engineer")
	if err != nil {
		t.Fatalf("failed to create player: %v", err)
	}
	s, err := ship.NewShip("ship-1", "The Nebula Voyager", "engine-1", "shield-1", "power-1")
	if err != nil {
		t.Fatalf("failed to create ship: %v", err)
	}

	inventory := ship.Inventory{
		NewTestComponent("core", "Basic Fusion Reactor", component.SubtypePropulsionCore, 40, 35, 45),
		NewTestComponent("radiator", "Standard Radiator Grid", component.SubtypeCoolantSystem, 30, 15, -50),
		NewTestComponent("deflector", "Electromagnetic Deflector", component.SubtypeBarrierProjector, 40, 45, 20),
		NewTestComponent("reactor", "Fusion Reactor", component.SubtypeEnergySource, 60, 0, 55),
	}
	missions := []mission.Mission{{
		ID:      "first-steps",
		Name:    "First Steps: Engine Installation",
		Rewards: mission.Reward{Credits: 100, Experience: 50},
		Status:  mission.StatusAvailable,
	}}

	st, err := game.New(p, s, inventory, missions, 200)
	if err != nil {
		t.Fatalf("failed to create game: %v", err)
	}
	return st
}
