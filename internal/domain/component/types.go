package component

import (
	"fmt"

	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
)

// Category is the ship subsystem a component (and module) belongs to
type Category string

const (
	CategoryEngine Category = "engine"
	CategoryShield Category = "shield"
	CategoryPower  Category = "power"
)

// Categories lists every category in the fixed order modules are evaluated
var Categories = []Category{CategoryEngine, CategoryShield, CategoryPower}

// ParseCategory converts user input into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", shared.NewInvalidCategoryError(s)
	}
	return c, nil
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryEngine, CategoryShield, CategoryPower:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Subtype narrows a component down to its role inside a module
type Subtype string

const (
	SubtypePropulsionCore  Subtype = "propulsionCore"
	SubtypeThrustModulator Subtype = "thrustModulator"
	SubtypeCoolantSystem   Subtype = "coolantSystem"

	SubtypeBarrierProjector   Subtype = "barrierProjector"
	SubtypeShieldHarmonic     Subtype = "shieldHarmonic"
	SubtypeEnergyDistribution Subtype = "energyDistribution"

	SubtypeEnergySource Subtype = "energySource"
	SubtypeStabilizer   Subtype = "stabilizer"
	SubtypeAmplifier    Subtype = "amplifier"
)

var subtypeCategories = map[Subtype]Category{
	SubtypePropulsionCore:     CategoryEngine,
	SubtypeThrustModulator:    CategoryEngine,
	SubtypeCoolantSystem:      CategoryEngine,
	SubtypeBarrierProjector:   CategoryShield,
	SubtypeShieldHarmonic:     CategoryShield,
	SubtypeEnergyDistribution: CategoryShield,
	SubtypeEnergySource:       CategoryPower,
	SubtypeStabilizer:         CategoryPower,
	SubtypeAmplifier:          CategoryPower,
}

// Category returns the category a subtype belongs to, or "" if unknown
func (s Subtype) Category() Category {
	return subtypeCategories[s]
}

// Rarity is the loot tier of a component
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

var validRarities = map[Rarity]bool{
	RarityCommon:    true,
	RarityUncommon:  true,
	RarityRare:      true,
	RarityLegendary: true,
}

// SizeClass is the physical footprint of a component
type SizeClass string

const (
	SizeS  SizeClass = "S"
	SizeM  SizeClass = "M"
	SizeL  SizeClass = "L"
	SizeXL SizeClass = "XL"
)

var validSizeClasses = map[SizeClass]bool{
	SizeS:  true,
	SizeM:  true,
	SizeL:  true,
	SizeXL: true,
}

// Condition is the three-tier wear descriptor derived from durability
type Condition string

const (
	ConditionPristine Condition = "pristine"
	ConditionDamaged  Condition = "damaged"
	ConditionDegraded Condition = "degraded"
)

const (
	// PristineThreshold is the durability a component must exceed to be pristine
	PristineThreshold = 80.0
	// DamagedThreshold is the durability a component must exceed to be merely damaged
	DamagedThreshold = 40.0

	MinDurability = 0.0
	MaxDurability = 100.0
)

// ConditionForDurability maps a durability value onto its condition tier
func ConditionForDurability(durability float64) Condition {
	switch {
	case durability > PristineThreshold:
		return ConditionPristine
	case durability > DamagedThreshold:
		return ConditionDamaged
	default:
		return ConditionDegraded
	}
}

func (c Condition) IsValid() bool {
	switch c {
	case ConditionPristine, ConditionDamaged, ConditionDegraded:
		return true
	}
	return false
}

func validationErrorf(field, format string, args ...interface{}) error {
	return shared.NewValidationError(field, fmt.Sprintf(format, args...))
}
