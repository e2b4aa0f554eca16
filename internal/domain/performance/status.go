package performance

import (
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
)

const (
	OverheatingThreshold       = 30.0
	PowerFluctuationThreshold  = 40.0
	PowerSurgeStabilityLimit   = 20.0
	PowerSurgeOutputLimit      = 70.0
	ShieldHarmonicsThreshold   = 35.0
	CoolantLeakDurabilityLimit = 40.0
)

// DeriveStatus computes the hazard flags from ship performance and the
// modules' own performance and components. It has no memory of earlier flags.
//
// The coolant check looks at the first coolant system in the engine, in slot
// order; an engine without one never leaks.
func DeriveStatus(perf ship.ShipPerformance, modules ship.Modules) ship.StatusFlags {
	power := modules.Power.Performance
	shield := modules.Shield.Performance

	return ship.StatusFlags{
		Overheating:                 perf.HeatManagement < OverheatingThreshold,
		PowerFluctuations:           power.Stability < PowerFluctuationThreshold,
		PowerSurge:                  power.Stability < PowerSurgeStabilityLimit && power.Output > PowerSurgeOutputLimit,
		ShieldHarmonicsDestabilized: shield.Stability < ShieldHarmonicsThreshold,
		CoolantLeak:                 hasCoolantLeak(modules.Engine),
	}
}

func hasCoolantLeak(engine ship.Module) bool {
	for _, c := range engine.Installed() {
		if c.IsCoolant() {
			return c.Properties.Durability < CoolantLeakDurabilityLimit
		}
	}
	return false
}
