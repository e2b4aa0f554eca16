package component

import (
	"math"
	"slices"
)

// Material is one entry of a component's material composition
type Material struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Properties are the primary numeric attributes of a component.
// HeatGeneration is signed: coolant systems carry negative values.
type Properties struct {
	PowerRating       float64   `json:"powerRating"`
	EnergyConsumption float64   `json:"energyConsumption"`
	HeatGeneration    float64   `json:"heatGeneration"`
	Durability        float64   `json:"durability"`
	Mass              float64   `json:"mass"`
	SizeClass         SizeClass `json:"sizeClass"`
}

// SecondaryProperties hold compatibility, wear and crafting data
type SecondaryProperties struct {
	Compatibility     []string   `json:"compatibility"`
	SpecialEffects    []Effect   `json:"specialEffects"`
	Condition         Condition  `json:"condition"`
	RequiredTechLevel int        `json:"requiredTechLevel"`
	Materials         []Material `json:"materialComposition"`
}

// Component is an installable ship part.
//
// Components are values: every modifier returns a new Component and never
// touches the receiver, so the copy in the inventory and the copy in a slot
// can never alias. Slice fields are treated as read-only once constructed.
//
// Invariants:
// - Durability stays within [0, 100]
// - Condition always equals ConditionForDurability(Durability)
// - Subtype belongs to Category
type Component struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Category    Category            `json:"type"`
	Subtype     Subtype             `json:"subtype"`
	Rarity      Rarity              `json:"rarity"`
	Properties  Properties          `json:"properties"`
	Secondary   SecondaryProperties `json:"secondaryProperties"`
	Sprite      string              `json:"sprite"`
	Description string              `json:"description"`
}

// Validate checks the structural invariants of a component
func (c Component) Validate() error {
	if c.ID == "" {
		return validationErrorf("id", "cannot be empty")
	}
	if c.Name == "" {
		return validationErrorf("name", "cannot be empty")
	}
	if !c.Category.IsValid() {
		return validationErrorf("type", "invalid category %q", c.Category)
	}
	if c.Subtype.Category() != c.Category {
		return validationErrorf("subtype", "%q is not a %s subtype", c.Subtype, c.Category)
	}
	if !validRarities[c.Rarity] {
		return validationErrorf("rarity", "invalid rarity %q", c.Rarity)
	}
	if !validSizeClasses[c.Properties.SizeClass] {
		return validationErrorf("sizeClass", "invalid size class %q", c.Properties.SizeClass)
	}
	for _, p := range []struct {
		field string
		value float64
	}{
		{"powerRating", c.Properties.PowerRating},
		{"energyConsumption", c.Properties.EnergyConsumption},
		{"heatGeneration", c.Properties.HeatGeneration},
		{"durability", c.Properties.Durability},
		{"mass", c.Properties.Mass},
	} {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return validationErrorf(p.field, "must be a finite number")
		}
	}
	if c.Properties.Durability < MinDurability || c.Properties.Durability > MaxDurability {
		return validationErrorf("durability", "%.1f is outside [0, 100]", c.Properties.Durability)
	}
	if c.Properties.EnergyConsumption < 0 {
		return validationErrorf("energyConsumption", "cannot be negative")
	}
	if c.Secondary.Condition != ConditionForDurability(c.Properties.Durability) {
		return validationErrorf("condition", "%q does not match durability %.1f",
			c.Secondary.Condition, c.Properties.Durability)
	}
	for _, e := range c.Secondary.SpecialEffects {
		if !e.Kind.IsValid() {
			return validationErrorf("specialEffects", "invalid effect kind %q", e.Kind)
		}
	}
	return nil
}

// WithDurability returns a copy with durability clamped to [0, 100] and the
// condition tier recomputed to match
func (c Component) WithDurability(durability float64) Component {
	durability = math.Max(MinDurability, math.Min(MaxDurability, durability))
	c.Properties.Durability = durability
	c.Secondary.Condition = ConditionForDurability(durability)
	return c
}

// Repair returns a copy with durability raised by amount (capped at 100)
func (c Component) Repair(amount float64) Component {
	return c.WithDurability(c.Properties.Durability + amount)
}

// Damage returns a copy with durability lowered by amount (floored at 0)
func (c Component) Damage(amount float64) Component {
	return c.WithDurability(c.Properties.Durability - amount)
}

// Condition returns the current condition tier
func (c Component) Condition() Condition {
	return c.Secondary.Condition
}

// ListsCompatible reports whether this component's compatibility list names other
func (c Component) ListsCompatible(name string) bool {
	return slices.Contains(c.Secondary.Compatibility, name)
}

// FindEffect looks up one of the component's special effects by ID
func (c Component) FindEffect(effectID string) (Effect, bool) {
	for _, e := range c.Secondary.SpecialEffects {
		if e.ID == effectID {
			return e, true
		}
	}
	return Effect{}, false
}

// IsCoolant reports whether the component is an engine coolant system
func (c Component) IsCoolant() bool {
	return c.Subtype == SubtypeCoolantSystem
}
