package performance_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	"github.com/andrescamacho/mekanik-go/internal/domain/performance"
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
)

const tolerance = 0.01

type partDef struct {
	name        string
	subtype     component.Subtype
	power       float64
	consumption float64
	heat        float64
	durability  float64
	compatible  []string
}

func newComponent(s partDef) component.Component {
	c := component.Component{
		ID:       "id-" + s.name,
		Name:     s.name,
		Category: s.subtype.Category(),
		Subtype:  s.subtype,
		Rarity:   component.RarityCommon,
		Properties: component.Properties{
			PowerRating:       s.power,
			EnergyConsumption: s.consumption,
			HeatGeneration:    s.heat,
			SizeClass:         component.SizeM,
		},
		Secondary: component.SecondaryProperties{
			Compatibility:     s.compatible,
			RequiredTechLevel: 1,
		},
	}
	return c.WithDurability(s.durability)
}

func slots(components ...component.Component) ship.Components {
	out := ship.Components{ship.Slot1: nil, ship.Slot2: nil, ship.Slot3: nil}
	for i, c := range components {
		c := c
		out[ship.Slots[i]] = &c
	}
	return out
}

func newTestShip(engine, shield, power ship.Components) ship.Ship {
	s, err := ship.NewShip("ship-1", "Test Vessel", "engine-1", "shield-1", "power-1")
	if err != nil {
		panic(err)
	}
	s.Modules.Engine.Components = engine
	s.Modules.Shield.Components = shield
	s.Modules.Power.Components = power
	return s
}

var (
	fusionCore = partDef{name: "Basic Fusion Reactor", subtype: component.SubtypePropulsionCore,
		power: 40, consumption: 35, heat: 45, durability: 100,
		compatible: []string{"Standard Radiator Grid", "Basic Thrust Vectoring Vanes"}}
	vanes = partDef{name: "Basic Thrust Vectoring Vanes", subtype: component.SubtypeThrustModulator,
		power: 35, consumption: 25, heat: 30, durability: 100,
		compatible: []string{"Basic Fusion Reactor", "Standard Radiator Grid"}}
	radiator = partDef{name: "Standard Radiator Grid", subtype: component.SubtypeCoolantSystem,
		power: 30, consumption: 15, heat: -50, durability: 100}
	deflector = partDef{name: "Electromagnetic Deflector", subtype: component.SubtypeBarrierProjector,
		power: 40, consumption: 45, heat: 20, durability: 100}
	reactor = partDef{name: "Fusion Reactor", subtype: component.SubtypeEnergySource,
		power: 60, consumption: 0, heat: 55, durability: 100}
)

func TestCalculateModulePerformance_EmptyModuleIsAllZero(t *testing.T) {
	for _, category := range component.Categories {
		perf := performance.CalculateModulePerformance(category, slots())

		assert.Equal(t, ship.ModulePerformance{}, perf, category)
		assert.False(t, perf.HasCategoryMetrics(), category)
	}
}

func TestCalculateModulePerformance_SingleEngineComponent(t *testing.T) {
	perf := performance.CalculateModulePerformance(component.CategoryEngine, slots(newComponent(fusionCore)))

	assert.InDelta(t, 100.0/36.0, perf.Efficiency, 1e-9)
	assert.InDelta(t, 100.0, perf.Stability, 1e-9)
	assert.InDelta(t, 40.0, perf.Output, 1e-9)
	assert.InDelta(t, 45.0, perf.Heat, 1e-9)
	require.NotNil(t, perf.Engine)
	assert.InDelta(t, 40*(100.0/36.0)/100, perf.Engine.Thrust, 1e-9)
	assert.InDelta(t, 80.0, perf.Engine.Maneuverability, 1e-9)
	assert.Nil(t, perf.Shield)
	assert.Nil(t, perf.Power)
}

func TestCalculateModulePerformance_AveragesEfficiencyAndStabilitySumsOutputAndHeat(t *testing.T) {
	worn := vanes
	worn.durability = 60

	perf := performance.CalculateModulePerformance(component.CategoryEngine,
		slots(newComponent(fusionCore), newComponent(worn), newComponent(radiator)))

	expectedEfficiency := (100.0/36.0 + (100.0/26.0)*0.6 + 100.0/16.0) / 3
	assert.InDelta(t, expectedEfficiency, perf.Efficiency, 1e-9)
	assert.InDelta(t, (100+70+100)/3.0, perf.Stability, 1e-9)
	assert.InDelta(t, 105.0, perf.Output, 1e-9)
	assert.InDelta(t, 25.0, perf.Heat, 1e-9, "coolant heat is subtracted")
}

func TestCalculateModulePerformance_DegradedComponentStability(t *testing.T) {
	broken := deflector
	broken.durability = 30

	perf := performance.CalculateModulePerformance(component.CategoryShield, slots(newComponent(broken)))

	assert.InDelta(t, 40.0, perf.Stability, 1e-9)
	assert.InDelta(t, (100.0/46.0)*0.3, perf.Efficiency, 1e-9)
}

func TestCalculateModulePerformance_CategoryFields(t *testing.T) {
	shield := performance.CalculateModulePerformance(component.CategoryShield, slots(newComponent(deflector)))
	require.NotNil(t, shield.Shield)
	assert.InDelta(t, 40.0, shield.Shield.Strength, 1e-9)
	assert.InDelta(t, 40*(100.0/46.0)/100, shield.Shield.RechargeRate, 1e-9)

	power := performance.CalculateModulePerformance(component.CategoryPower, slots(newComponent(reactor)))
	require.NotNil(t, power.Power)
	assert.InDelta(t, 120.0, power.Power.EnergyStorage, 1e-9)
	assert.InDelta(t, 50.0, power.Power.Distribution, 1e-9)
	assert.InDelta(t, 100.0, power.Efficiency, 1e-9, "zero consumption means full efficiency")
}

func TestCalculateModulePerformance_DoesNotMutateInput(t *testing.T) {
	module := ship.NewEmptyModule("engine-1", component.CategoryEngine).
		WithComponent(ship.Slot2, ptr(newComponent(fusionCore)))
	before := module.Performance

	calculated := performance.CalculateModule(module)

	assert.Equal(t, before, module.Performance)
	assert.InDelta(t, 40.0, calculated.Performance.Output, 1e-9)
}

func TestCalculateSynergy(t *testing.T) {
	tests := []struct {
		name       string
		components []component.Component
		expected   int
	}{
		{"empty module", nil, 0},
		{"single component", []component.Component{newComponent(fusionCore)}, 0},
		{"incompatible pair", []component.Component{newComponent(fusionCore), newComponent(deflector)}, 0},
		{"declared on one side only", []component.Component{newComponent(fusionCore), newComponent(radiator)}, 10},
		{"declared on the other side only", []component.Component{newComponent(radiator), newComponent(fusionCore)}, 10},
		{"mutually compatible pair scores once", []component.Component{newComponent(fusionCore), newComponent(vanes)}, 10},
		{"three pairwise compatible components", []component.Component{newComponent(fusionCore), newComponent(vanes), newComponent(radiator)}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, performance.CalculateSynergy(slots(tt.components...)))
		})
	}
}

func TestCalculateSynergy_UsesExactNames(t *testing.T) {
	a := fusionCore
	a.compatible = []string{"standard radiator grid"}

	assert.Equal(t, 0, performance.CalculateSynergy(slots(newComponent(a), newComponent(radiator))))
}

func TestCalculateShipPerformance_NoPowerIsAllZero(t *testing.T) {
	s := newTestShip(
		slots(newComponent(fusionCore), newComponent(vanes), newComponent(radiator)),
		slots(newComponent(deflector)),
		slots(),
	)

	assert.Equal(t, ship.ShipPerformance{}, performance.CalculateShipPerformance(s))
}

func TestCalculateShipPerformance_SingleEngineComponentScenario(t *testing.T) {
	s := newTestShip(slots(newComponent(fusionCore)), slots(), slots(newComponent(reactor)))

	perf := performance.CalculateShipPerformance(s)

	efficiency := 100.0 / 36.0
	assert.InDelta(t, 1.11, perf.Speed, tolerance)
	assert.InDelta(t, 40*efficiency/100, perf.Speed, 1e-9)
	assert.InDelta(t, 80.0, perf.Maneuverability, 1e-9)
	assert.Zero(t, perf.ShieldStrength, "shield has no demand so it receives no power")
	assert.InDelta(t, 60.0, perf.PowerOutput, 1e-9)
	assert.InDelta(t, 100-(45+55)/3.0, perf.HeatManagement, 1e-9)
	assert.InDelta(t, efficiency, perf.FuelEfficiency, 1e-9)
}

func TestCalculateShipPerformance_ShieldIsPowerLimited(t *testing.T) {
	s := newTestShip(slots(newComponent(fusionCore)), slots(newComponent(deflector)), slots(newComponent(reactor)))

	perf := performance.CalculateShipPerformance(s)

	shieldFactor := (60 * performance.ShieldPowerShare) / 45
	assert.InDelta(t, 40*shieldFactor, perf.ShieldStrength, 1e-9)
	assert.InDelta(t, 80.0, perf.Maneuverability, 1e-9, "engine still fully powered")
}

func TestCalculateShipPerformance_NoDemandDeliversNoPower(t *testing.T) {
	s := newTestShip(slots(), slots(), slots(newComponent(reactor)))

	perf := performance.CalculateShipPerformance(s)

	assert.Zero(t, perf.Speed)
	assert.Zero(t, perf.Maneuverability)
	assert.Zero(t, perf.ShieldStrength)
	assert.Zero(t, perf.FuelEfficiency)
	assert.InDelta(t, 60.0, perf.PowerOutput, 1e-9)
	assert.InDelta(t, 100-55/3.0, perf.HeatManagement, 1e-9)
}

func TestCalculateShipPerformance_ZeroEngineDemandWithShieldDemand(t *testing.T) {
	idleCore := fusionCore
	idleCore.consumption = 0
	s := newTestShip(slots(newComponent(idleCore)), slots(newComponent(deflector)), slots(newComponent(reactor)))

	perf := performance.CalculateShipPerformance(s)

	assert.Zero(t, perf.Speed, "zero engine demand yields a zero engine factor")
	assert.Zero(t, perf.FuelEfficiency)
	assert.Greater(t, perf.ShieldStrength, 0.0)
}

func TestCalculateShipPerformance_SynergyMultipliesOutputs(t *testing.T) {
	stabilizer := partDef{name: "Mechanical Governor", subtype: component.SubtypeStabilizer,
		power: 10, consumption: 5, heat: 5, durability: 100, compatible: []string{"Fusion Reactor"}}
	s := newTestShip(
		slots(newComponent(fusionCore), newComponent(vanes)),
		slots(),
		slots(newComponent(reactor), newComponent(stabilizer)),
	)

	perf := performance.CalculateShipPerformance(s)

	engine := performance.CalculateModulePerformance(component.CategoryEngine, s.Modules.Engine.Components)
	engineFactor := math.Min(1, (70*performance.EnginePowerShare)/60)
	assert.InDelta(t, 70*1.1, perf.PowerOutput, 1e-9)
	assert.InDelta(t, engine.Thrust()*engineFactor*1.1, perf.Speed, 1e-9)
	assert.InDelta(t, engine.Efficiency*engineFactor, perf.FuelEfficiency, 1e-9, "fuel efficiency ignores synergy")
}

func TestCalculateShipPerformance_HeatManagementClampsAtZero(t *testing.T) {
	furnace := reactor
	furnace.heat = 400
	s := newTestShip(slots(newComponent(fusionCore)), slots(), slots(newComponent(furnace)))

	perf := performance.CalculateShipPerformance(s)

	assert.Zero(t, perf.HeatManagement)
}

func TestCalculateShipPerformance_IgnoresStaleModulePerformance(t *testing.T) {
	s := newTestShip(slots(newComponent(fusionCore)), slots(), slots(newComponent(reactor)))
	s.Modules.Power.Performance = ship.ModulePerformance{Output: 0}
	s.Modules.Engine.Performance = ship.ModulePerformance{Output: 9999, Engine: &ship.EngineMetrics{Thrust: 9999}}

	perf := performance.CalculateShipPerformance(s)

	assert.InDelta(t, 1.11, perf.Speed, tolerance)
}

func TestCalculateShipPerformance_NeverNegativeOrNaN(t *testing.T) {
	zeroed := partDef{name: "Dead Cell", subtype: component.SubtypeEnergySource, power: 0, durability: 0}
	negative := partDef{name: "Heat Sink", subtype: component.SubtypeAmplifier, power: 5, heat: -300, durability: 0}
	ships := []ship.Ship{
		newTestShip(slots(), slots(), slots()),
		newTestShip(slots(newComponent(fusionCore)), slots(newComponent(deflector)), slots(newComponent(zeroed))),
		newTestShip(slots(newComponent(radiator)), slots(), slots(newComponent(negative))),
		newTestShip(slots(newComponent(radiator), newComponent(radiator)), slots(newComponent(deflector)), slots(newComponent(reactor), newComponent(negative))),
	}

	for i, s := range ships {
		perf := performance.CalculateShipPerformance(s)
		for _, metric := range ship.Metrics {
			v, ok := perf.Value(metric)
			require.True(t, ok)
			assert.False(t, math.IsNaN(v), "ship %d metric %s is NaN", i, metric)
			assert.GreaterOrEqual(t, v, 0.0, "ship %d metric %s", i, metric)
		}
	}
}

func TestRecalculate_OverflowingHeatReadsAsOverheating(t *testing.T) {
	torch := partDef{name: "Plasma Torch", subtype: component.SubtypePropulsionCore,
		power: 40, consumption: 35, heat: math.MaxFloat64, durability: 100}
	afterburner := partDef{name: "Afterburner", subtype: component.SubtypeThrustModulator,
		power: 35, consumption: 25, heat: math.MaxFloat64, durability: 100}

	s := performance.Recalculate(newTestShip(slots(newComponent(torch), newComponent(afterburner)), slots(), slots(newComponent(reactor))))

	assert.Equal(t, math.MaxFloat64, s.Modules.Engine.Performance.Heat)
	assert.Equal(t, 0.0, s.Performance.HeatManagement)
	assert.True(t, s.Status.Overheating)

	sink := partDef{name: "Cryo Sink", subtype: component.SubtypeCoolantSystem,
		power: 30, consumption: 15, heat: -math.MaxFloat64, durability: 100}
	chilled := performance.Recalculate(newTestShip(slots(newComponent(sink), newComponent(sink)), slots(), slots(newComponent(reactor))))

	assert.Greater(t, chilled.Performance.HeatManagement, 100.0)
	assert.False(t, chilled.Status.Overheating)
}

func TestDeriveStatus_CoolantLeak(t *testing.T) {
	leaking := radiator
	leaking.durability = 35
	s := performance.Recalculate(newTestShip(slots(newComponent(fusionCore), newComponent(leaking)), slots(), slots(newComponent(reactor))))
	assert.True(t, s.Status.CoolantLeak)

	repaired, changed, err := ship.UpdateInstalled(s, component.CategoryEngine, ship.Slot2, func(c component.Component) component.Component {
		return c.WithDurability(45)
	})
	require.NoError(t, err)
	require.True(t, changed)

	repaired = performance.Recalculate(repaired)
	assert.False(t, repaired.Status.CoolantLeak)
}

func TestDeriveStatus_NoCoolantMeansNoLeak(t *testing.T) {
	worn := fusionCore
	worn.durability = 5
	s := performance.Recalculate(newTestShip(slots(newComponent(worn)), slots(), slots(newComponent(reactor))))

	assert.False(t, s.Status.CoolantLeak)
}

func TestDeriveStatus_Thresholds(t *testing.T) {
	modules := ship.Modules{
		Engine: ship.NewEmptyModule("e", component.CategoryEngine),
		Shield: ship.NewEmptyModule("s", component.CategoryShield).WithPerformance(ship.ModulePerformance{Stability: 34}),
		Power:  ship.NewEmptyModule("p", component.CategoryPower).WithPerformance(ship.ModulePerformance{Stability: 19, Output: 71}),
	}

	status := performance.DeriveStatus(ship.ShipPerformance{HeatManagement: 29.9}, modules)

	assert.True(t, status.Overheating)
	assert.True(t, status.PowerFluctuations)
	assert.True(t, status.PowerSurge)
	assert.True(t, status.ShieldHarmonicsDestabilized)
	assert.False(t, status.CoolantLeak)

	modules.Power = modules.Power.WithPerformance(ship.ModulePerformance{Stability: 19, Output: 70})
	modules.Shield = modules.Shield.WithPerformance(ship.ModulePerformance{Stability: 35})

	status = performance.DeriveStatus(ship.ShipPerformance{HeatManagement: 30}, modules)

	assert.False(t, status.Overheating)
	assert.True(t, status.PowerFluctuations)
	assert.False(t, status.PowerSurge, "output must exceed 70")
	assert.False(t, status.ShieldHarmonicsDestabilized)
}

func TestMeetsRequirements(t *testing.T) {
	perf := ship.ShipPerformance{Speed: 10, ShieldStrength: 5}

	assert.True(t, performance.MeetsRequirements(perf, nil))
	assert.True(t, performance.MeetsRequirements(perf, performance.Requirements{ship.MetricSpeed: 10}))
	assert.False(t, performance.MeetsRequirements(perf, performance.Requirements{ship.MetricSpeed: 10, ship.MetricShieldStrength: 6}))
	assert.False(t, performance.MeetsRequirements(perf, performance.Requirements{"warpFactor": 1}))
}

func TestRecalculate_ReplacesAllDerivedFields(t *testing.T) {
	s := newTestShip(slots(newComponent(fusionCore)), slots(), slots(newComponent(reactor)))
	s.Status.Overheating = true

	recalculated := performance.Recalculate(s)

	assert.InDelta(t, 60.0, recalculated.Modules.Power.Performance.Output, 1e-9)
	assert.InDelta(t, 1.11, recalculated.Performance.Speed, tolerance)
	assert.False(t, recalculated.Status.Overheating)
	assert.True(t, s.Status.Overheating, "input ship is untouched")
	assert.Zero(t, s.Performance.Speed)
}

func ptr(c component.Component) *component.Component {
	return &c
}
