// Package performance turns a ship's installed-component graph into module
// and ship performance figures and the hazard flags derived from them.
//
// Every function here is pure: inputs are read, never written, and a fresh
// record is returned. No function returns an error; numeric edge cases such as
// empty modules, zero power or zero demand resolve to 0, never NaN.
package performance

import (
	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
)

const (
	pristineFactor = 1.0
	damagedFactor  = 0.7
	degradedFactor = 0.4

	engineManeuverabilityRatio = 0.8
	powerStorageRatio          = 2.0
	powerDistributionRatio     = 0.5
)

// conditionFactor scales a component's stability contribution by its wear tier
func conditionFactor(c component.Condition) float64 {
	switch c {
	case component.ConditionPristine:
		return pristineFactor
	case component.ConditionDamaged:
		return damagedFactor
	default:
		return degradedFactor
	}
}

// componentEfficiency is inversely related to energy draw and scaled by durability
func componentEfficiency(p component.Properties) float64 {
	denominator := p.EnergyConsumption + 1
	if denominator <= 0 {
		return 0
	}
	return (100 / denominator) * (p.Durability / 100)
}

// CalculateModulePerformance computes a module's aggregate metrics from the
// components in its slots.
//
// Output and heat are sums over installed components (heat is signed, so
// coolant systems pull it down). Efficiency and stability are means. The
// category-specific block is derived from those base metrics; an empty module
// gets all zeros and no category block.
func CalculateModulePerformance(category component.Category, components ship.Components) ship.ModulePerformance {
	installed := components.Installed()
	if len(installed) == 0 {
		return ship.ModulePerformance{}
	}

	var efficiency, stability, output, heat float64
	for _, c := range installed {
		output += c.Properties.PowerRating
		heat += c.Properties.HeatGeneration
		efficiency += componentEfficiency(c.Properties)
		stability += conditionFactor(c.Condition()) * 100
	}

	count := float64(len(installed))
	efficiency /= count
	stability /= count

	perf := ship.ModulePerformance{
		Efficiency: finite(efficiency),
		Stability:  finite(stability),
		Output:     finite(output),
		Heat:       saturate(heat),
	}

	switch category {
	case component.CategoryEngine:
		perf.Engine = &ship.EngineMetrics{
			Thrust:          finite(perf.Output * (perf.Efficiency / 100)),
			Maneuverability: finite(perf.Stability * engineManeuverabilityRatio),
		}
	case component.CategoryShield:
		perf.Shield = &ship.ShieldMetrics{
			Strength:     finite(perf.Output * (perf.Stability / 100)),
			RechargeRate: finite(perf.Output * (perf.Efficiency / 100)),
		}
	case component.CategoryPower:
		perf.Power = &ship.PowerMetrics{
			EnergyStorage: finite(perf.Output * powerStorageRatio),
			Distribution:  finite(perf.Stability * powerDistributionRatio),
		}
	}

	return perf
}

// CalculateModule returns a copy of module carrying its recomputed performance
func CalculateModule(module ship.Module) ship.Module {
	return module.WithPerformance(CalculateModulePerformance(module.Category, module.Components))
}
