package player

import "github.com/andrescamacho/mekanik-go/internal/domain/shared"

// Skills are the engineer's proficiency ratings
type Skills struct {
	Engineering       int `json:"engineering"`
	Diagnostics       int `json:"diagnostics"`
	PowerSystems      int `json:"powerSystems"`
	PropulsionSystems int `json:"propulsionSystems"`
	DefenseSystems    int `json:"defenseSystems"`
}

// Player is the engineer profile carried in a game
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Experience int    `json:"experience"`
	Level      int    `json:"level"`
	Skills     Skills `json:"skills"`
}

// NewPlayer creates a level 1 player with every skill at 1
func NewPlayer(id, name string) (Player, error) {
	p := Player{
		ID:    id,
		Name:  name,
		Level: 1,
		Skills: Skills{
			Engineering:       1,
			Diagnostics:       1,
			PowerSystems:      1,
			PropulsionSystems: 1,
			DefenseSystems:    1,
		},
	}
	if err := p.Validate(); err != nil {
		return Player{}, err
	}
	return p, nil
}

// Validate checks the profile fields
func (p Player) Validate() error {
	if p.ID == "" {
		return shared.NewValidationError("player.id", "cannot be empty")
	}
	if p.Name == "" {
		return shared.NewValidationError("player.name", "cannot be empty")
	}
	if p.Level < 1 {
		return shared.NewValidationError("player.level", "must be at least 1")
	}
	if p.Experience < 0 {
		return shared.NewValidationError("player.experience", "cannot be negative")
	}
	return nil
}

// GainExperience returns a copy with xp added. Negative amounts are ignored.
func (p Player) GainExperience(xp int) Player {
	if xp > 0 {
		p.Experience += xp
	}
	return p
}
