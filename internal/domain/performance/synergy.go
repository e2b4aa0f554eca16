package performance

import "github.com/andrescamacho/mekanik-go/internal/domain/ship"

// SynergyPerPair is the percentage bonus granted by each compatible pair
const SynergyPerPair = 10

// CalculateSynergy returns the percentage bonus from compatible component pairs.
//
// Each unordered pair of installed components scores once when either side
// lists the other's exact name, so a mutually compatible pair is worth 10,
// not 20. Fewer than two components always yields 0.
func CalculateSynergy(components ship.Components) int {
	installed := components.Installed()
	bonus := 0
	for i := 0; i < len(installed); i++ {
		for j := i + 1; j < len(installed); j++ {
			a, b := installed[i], installed[j]
			if a.ListsCompatible(b.Name) || b.ListsCompatible(a.Name) {
				bonus += SynergyPerPair
			}
		}
	}
	return bonus
}

// synergyMultiplier converts a percentage bonus into a multiplier
func synergyMultiplier(bonus int) float64 {
	return 1 + float64(bonus)/100
}
