package game_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	"github.com/andrescamacho/mekanik-go/internal/domain/game"
	"github.com/andrescamacho/mekanik-go/internal/domain/mission"
	"github.com/andrescamacho/mekanik-go/internal/domain/performance"
	"github.com/andrescamacho/mekanik-go/internal/domain/player"
	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
)

func newComponent(id, name string, subtype component.Subtype, power, consumption, heat float64) component.Component {
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
			SizeClass:         component.SizeM,
		},
	}.WithDurability(100)
}

func newState(t *testing.T) game.State {
	t.Helper()
	p, err := player.NewPlayer("player-1", "Rookie Engineer")
	require.NoError(t, err)
	s, err := ship.NewShip("ship-1", "The Nebula Voyager", "engine-1", "shield-1", "power-1")
	require.NoError(t, err)

	flush := newComponent("radiator", "Standard Radiator Grid", component.SubtypeCoolantSystem, 30, 15, -50)
	flush.Secondary.SpecialEffects = []component.Effect{
		{ID: "flush", Name: "Coolant Flush", Kind: component.EffectVentHeat, Magnitude: 50},
		{ID: "bounty", Name: "Salvage Bounty", Kind: component.EffectGrantCredits, Magnitude: 25},
	}

	inventory := ship.Inventory{
		newComponent("core", "Basic Fusion Reactor", component.SubtypePropulsionCore, 40, 35, 45),
		flush,
		newComponent("reactor", "Fusion Reactor", component.SubtypeEnergySource, 60, 0, 55),
	}
	missions := []mission.Mission{
		{
			ID:         "first-steps",
			Name:       "First Steps",
			Objectives: []mission.Objective{{ID: "o-1", Description: "Get moving", RequiredPerformance: performance.Requirements{ship.MetricSpeed: 1}}},
			Rewards: mission.Reward{
				Credits:    100,
				Experience: 50,
				Components: []component.Component{newComponent("governor", "Mechanical Governor", component.SubtypeStabilizer, 10, 5, 5)},
			},
			Status: mission.StatusAvailable,
		},
	}

	st, err := game.New(p, s, inventory, missions, 200)
	require.NoError(t, err)
	return st
}

func TestInstallComponent_RecalculatesShip(t *testing.T) {
	st := newState(t)

	st, err := game.InstallComponent(st, component.CategoryEngine, ship.Slot1, "core")
	require.NoError(t, err)
	assert.Equal(t, 0.0, st.Ship.Performance.Speed, "no power yet")

	st, err = game.InstallComponent(st, component.CategoryPower, ship.Slot1, "reactor")
	require.NoError(t, err)

	assert.Greater(t, st.Ship.Performance.Speed, 0.0)
	assert.Equal(t, 60.0, st.Ship.Modules.Power.Performance.Output)
	assert.Len(t, st.Inventory, 1)
	require.NoError(t, st.Validate())
}

func TestInstallComponent_ErrorLeavesStateUnchanged(t *testing.T) {
	st := newState(t)

	after, err := game.InstallComponent(st, component.CategoryShield, ship.Slot1, "core")

	var mismatch *shared.CategoryMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, st, after)
}

func TestRemoveComponent_EmptySlotIsNoOp(t *testing.T) {
	st := newState(t)

	after, err := game.RemoveComponent(st, component.CategoryEngine, ship.Slot2)

	require.NoError(t, err)
	assert.Equal(t, st, after)
}

func TestRepairAndDamage(t *testing.T) {
	st := newState(t)
	st, _ = game.InstallComponent(st, component.CategoryEngine, ship.Slot3, "radiator")

	st, err := game.DamageComponent(st, component.CategoryEngine, ship.Slot3, 65)
	require.NoError(t, err)
	assert.True(t, st.Ship.Status.CoolantLeak)

	st, err = game.RepairComponent(st, component.CategoryEngine, ship.Slot3, 10)
	require.NoError(t, err)
	assert.False(t, st.Ship.Status.CoolantLeak)
	c, _ := st.Ship.Modules.Engine.ComponentAt(ship.Slot3)
	assert.Equal(t, component.ConditionDamaged, c.Condition())
}

func TestStructuralSharing_UntouchedModulesUnchanged(t *testing.T) {
	before := newState(t)

	after, err := game.InstallComponent(before, component.CategoryEngine, ship.Slot1, "core")
	require.NoError(t, err)

	assert.Nil(t, before.Ship.Modules.Engine.Components[ship.Slot1])
	assert.Len(t, before.Inventory, 3)
	assert.Equal(t, before.Missions, after.Missions)
	assert.Equal(t, before.Player, after.Player)
}

func TestInventoryOperations(t *testing.T) {
	st := newState(t)

	st, err := game.RepairInventoryComponent(st, "core", 10)
	require.NoError(t, err)

	_, err = game.AddToInventory(st, newComponent("core", "Duplicate", component.SubtypePropulsionCore, 1, 1, 1))
	assert.Error(t, err, "IDs must stay unique")

	st, err = game.AddToInventory(st, newComponent("vanes", "Basic Thrust Vectoring Vanes", component.SubtypeThrustModulator, 35, 25, 30))
	require.NoError(t, err)
	assert.Len(t, st.Inventory, 4)

	st, err = game.RemoveFromInventory(st, "vanes")
	require.NoError(t, err)
	assert.Len(t, st.Inventory, 3)

	_, err = game.RemoveFromInventory(st, "vanes")
	var notFound *shared.ComponentNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestCredits(t *testing.T) {
	st := newState(t)

	st = game.AddCredits(st, 50)
	assert.Equal(t, 250, st.Credits)

	st = game.SubtractCredits(st, 1000)
	assert.Equal(t, 0, st.Credits)
}

func TestTickGameTime(t *testing.T) {
	st := game.TickGameTime(newState(t), 1.5)
	st = game.TickGameTime(st, 2)
	assert.Equal(t, 3.5, st.GameTime)
}

func TestCompleteMission_PaysRewards(t *testing.T) {
	st := newState(t)

	st, err := game.CompleteMission(st, "first-steps")
	require.NoError(t, err)

	assert.Equal(t, mission.StatusCompleted, st.Missions[0].Status)
	assert.Equal(t, 300, st.Credits)
	assert.Equal(t, 50, st.Player.Experience)
	assert.True(t, st.Owns("governor"))

	_, err = game.CompleteMission(st, "first-steps")
	var already *shared.MissionAlreadyCompletedError
	assert.True(t, errors.As(err, &already))

	_, err = game.CompleteMission(st, "unknown")
	var missing *shared.MissionNotFoundError
	assert.True(t, errors.As(err, &missing))
}

func TestEvaluateObjectives(t *testing.T) {
	st := newState(t)

	st, n, err := game.EvaluateObjectives(st, "first-steps")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	st, _ = game.InstallComponent(st, component.CategoryEngine, ship.Slot1, "core")
	st, _ = game.InstallComponent(st, component.CategoryPower, ship.Slot1, "reactor")

	st, n, err = game.EvaluateObjectives(st, "first-steps")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, st.Missions[0].Objectives[0].Completed)
}

func TestActivateEffect(t *testing.T) {
	st := newState(t)

	_, err := game.ActivateEffect(st, "radiator", "flush")
	var notFound *shared.ComponentNotFoundError
	require.True(t, errors.As(err, &notFound), "effects only fire from installed components")

	st, _ = game.InstallComponent(st, component.CategoryEngine, ship.Slot1, "core")
	st, _ = game.InstallComponent(st, component.CategoryEngine, ship.Slot2, "radiator")
	st, _ = game.DamageComponent(st, component.CategoryEngine, ship.Slot1, 50)
	st, _ = game.DamageComponent(st, component.CategoryEngine, ship.Slot2, 70)
	require.True(t, st.Ship.Status.CoolantLeak)

	st, err = game.ActivateEffect(st, "radiator", "flush")
	require.NoError(t, err)

	radiator, _ := st.Ship.Modules.Engine.ComponentAt(ship.Slot2)
	core, _ := st.Ship.Modules.Engine.ComponentAt(ship.Slot1)
	assert.Equal(t, 80.0, radiator.Properties.Durability)
	assert.Equal(t, 50.0, core.Properties.Durability, "vent_heat only touches coolant")
	assert.False(t, st.Ship.Status.CoolantLeak)

	st, err = game.ActivateEffect(st, "radiator", "bounty")
	require.NoError(t, err)
	assert.Equal(t, 225, st.Credits)

	_, err = game.ActivateEffect(st, "radiator", "warp")
	var effectErr *shared.EffectNotFoundError
	assert.True(t, errors.As(err, &effectErr))
}

func TestApplyEffect_RepairInstalledAndExperience(t *testing.T) {
	st := newState(t)
	st, _ = game.InstallComponent(st, component.CategoryEngine, ship.Slot1, "core")
	st, _ = game.InstallComponent(st, component.CategoryPower, ship.Slot1, "reactor")
	st, _ = game.DamageComponent(st, component.CategoryEngine, ship.Slot1, 30)
	st, _ = game.DamageComponent(st, component.CategoryPower, ship.Slot1, 30)

	st, err := game.ApplyEffect(st, component.Effect{ID: "e", Kind: component.EffectRepairInstalled, Magnitude: 20})
	require.NoError(t, err)
	core, _ := st.Ship.Modules.Engine.ComponentAt(ship.Slot1)
	reactor, _ := st.Ship.Modules.Power.ComponentAt(ship.Slot1)
	assert.Equal(t, 90.0, core.Properties.Durability)
	assert.Equal(t, 90.0, reactor.Properties.Durability)

	st, err = game.ApplyEffect(st, component.Effect{ID: "x", Kind: component.EffectGrantExperience, Magnitude: 12})
	require.NoError(t, err)
	assert.Equal(t, 12, st.Player.Experience)

	_, err = game.ApplyEffect(st, component.Effect{ID: "bad", Kind: "teleport"})
	assert.Error(t, err)
}

func TestValidate_DetectsDuplicatePlacement(t *testing.T) {
	st := newState(t)
	st, _ = game.InstallComponent(st, component.CategoryEngine, ship.Slot1, "core")
	core, _ := st.Ship.Modules.Engine.ComponentAt(ship.Slot1)
	st.Inventory = st.Inventory.Add(core)

	assert.Error(t, st.Validate())
}
