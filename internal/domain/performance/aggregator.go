package performance

import (
	"math"

	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
)

const (
	// EnginePowerShare is the fraction of available power budgeted for propulsion
	EnginePowerShare = 0.6
	// ShieldPowerShare is the fraction of available power budgeted for defense
	ShieldPowerShare = 0.4
)

// PowerBudget describes how the power module's output is split between the
// engine and shield. It is exposed for diagnostics; CalculateShipPerformance
// is the only consumer inside the package.
type PowerBudget struct {
	Available         float64
	EngineRequirement float64
	ShieldRequirement float64
	EngineFactor      float64
	ShieldFactor      float64
}

// powerRequirement sums the energy draw of a module's installed components
func powerRequirement(components ship.Components) float64 {
	total := 0.0
	for _, c := range components.Installed() {
		total += c.Properties.EnergyConsumption
	}
	return total
}

// powerFactor is the fraction of demand met by a budgeted share, capped at 1.
// Zero demand delivers nothing.
func powerFactor(budget, requirement float64) float64 {
	if requirement <= 0 {
		return 0
	}
	return math.Min(1, budget/requirement)
}

// CalculatePowerBudget applies the fixed 60/40 split of available power to the
// engine and shield demand.
//
// Parameters:
//   - available: power module output
//   - engine, shield: the modules whose components draw power
//
// Returns:
//   - The budget with both factors in [0, 1]; both are 0 when nothing draws power
func CalculatePowerBudget(available float64, engine, shield ship.Components) PowerBudget {
	b := PowerBudget{
		Available:         available,
		EngineRequirement: powerRequirement(engine),
		ShieldRequirement: powerRequirement(shield),
	}
	if available <= 0 || b.EngineRequirement+b.ShieldRequirement <= 0 {
		return b
	}
	b.EngineFactor = powerFactor(available*EnginePowerShare, b.EngineRequirement)
	b.ShieldFactor = powerFactor(available*ShieldPowerShare, b.ShieldRequirement)
	return b
}

// CalculateShipPerformance derives ship-wide metrics from the three modules.
//
// Module performance is always recomputed from the installed components, so a
// stale Performance field on the input has no effect. With no available power
// every metric is 0. All results are clamped to >= 0 and are never NaN.
func CalculateShipPerformance(s ship.Ship) ship.ShipPerformance {
	engine := CalculateModulePerformance(component.CategoryEngine, s.Modules.Engine.Components)
	shield := CalculateModulePerformance(component.CategoryShield, s.Modules.Shield.Components)
	power := CalculateModulePerformance(component.CategoryPower, s.Modules.Power.Components)

	engineSynergy := synergyMultiplier(CalculateSynergy(s.Modules.Engine.Components))
	shieldSynergy := synergyMultiplier(CalculateSynergy(s.Modules.Shield.Components))
	powerSynergy := synergyMultiplier(CalculateSynergy(s.Modules.Power.Components))

	availablePower := power.Output
	if availablePower <= 0 {
		return ship.ShipPerformance{}
	}

	budget := CalculatePowerBudget(availablePower, s.Modules.Engine.Components, s.Modules.Shield.Components)

	perf := ship.ShipPerformance{
		Speed:           engine.Thrust() * budget.EngineFactor * engineSynergy,
		Maneuverability: engine.Maneuverability() * budget.EngineFactor * engineSynergy,
		ShieldStrength:  shield.Strength() * budget.ShieldFactor * shieldSynergy,
		PowerOutput:     availablePower * powerSynergy,
		HeatManagement:  100 - saturate((engine.Heat+power.Heat+shield.Heat)/3),
		FuelEfficiency:  engine.Efficiency * budget.EngineFactor,
	}

	return perf.Map(func(_ ship.Metric, v float64) float64 {
		return math.Max(0, finite(v))
	})
}

// finite maps NaN and infinities to 0
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// saturate maps NaN to 0 and pins infinities to the largest finite value of
// the same sign, so an overflowing heat sum still reads as extreme heat
func saturate(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}
