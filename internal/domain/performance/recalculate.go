package performance

import "github.com/andrescamacho/mekanik-go/internal/domain/ship"

// Requirements are minimum values for a subset of ship metrics
type Requirements map[ship.Metric]float64

// MeetsRequirements reports whether perf reaches every listed minimum.
// Nil or empty requirements are always met; an unknown metric never is.
func MeetsRequirements(perf ship.ShipPerformance, reqs Requirements) bool {
	for metric, minimum := range reqs {
		actual, ok := perf.Value(metric)
		if !ok || actual < minimum {
			return false
		}
	}
	return true
}

// Recalculate returns a copy of s with every derived field replaced: each
// module's performance, the ship performance, then the status flags computed
// from those fresh values.
func Recalculate(s ship.Ship) ship.Ship {
	s.Modules = ship.Modules{
		Engine: CalculateModule(s.Modules.Engine),
		Shield: CalculateModule(s.Modules.Shield),
		Power:  CalculateModule(s.Modules.Power),
	}
	s.Performance = CalculateShipPerformance(s)
	s.Status = DeriveStatus(s.Performance, s.Modules)
	return s
}
