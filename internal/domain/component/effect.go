package component

// EffectKind tags what a special effect does. Effects carry no behavior of their
// own; the game layer dispatches on the kind, which keeps components serializable.
type EffectKind string

const (
	// EffectRepairInstalled repairs every installed component by Magnitude durability
	EffectRepairInstalled EffectKind = "repair_installed"
	// EffectVentHeat repairs only installed coolant systems by Magnitude durability
	EffectVentHeat EffectKind = "vent_heat"
	// EffectGrantCredits adds Magnitude credits
	EffectGrantCredits EffectKind = "grant_credits"
	// EffectGrantExperience adds Magnitude experience to the player
	EffectGrantExperience EffectKind = "grant_experience"
)

func (k EffectKind) IsValid() bool {
	switch k {
	case EffectRepairInstalled, EffectVentHeat, EffectGrantCredits, EffectGrantExperience:
		return true
	}
	return false
}

// Effect is a special effect attached to a component
type Effect struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Kind        EffectKind `json:"kind"`
	Magnitude   float64    `json:"magnitude"`
}
