package game

import (
	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	"github.com/andrescamacho/mekanik-go/internal/domain/mission"
	"github.com/andrescamacho/mekanik-go/internal/domain/player"
	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
)

// Settings are the player's audio and tutorial preferences
type Settings struct {
	SoundEnabled    bool    `json:"soundEnabled"`
	MusicVolume     float64 `json:"musicVolume"`
	SFXVolume       float64 `json:"sfxVolume"`
	TutorialEnabled bool    `json:"tutorialEnabled"`
}

// DefaultSettings returns the settings a new game starts with
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:    true,
		MusicVolume:     0.7,
		SFXVolume:       0.8,
		TutorialEnabled: true,
	}
}

// State is the whole game aggregate.
//
// Every update in this package takes a State and returns a new one. Only the
// touched parts are copied: an install copies one module's slot map and the
// inventory slice, and everything else is shared with the previous value.
// Shared parts must therefore never be mutated in place.
type State struct {
	Player    player.Player     `json:"player"`
	Ship      ship.Ship         `json:"ship"`
	Inventory ship.Inventory    `json:"inventory"`
	Missions  []mission.Mission `json:"missions"`
	GameTime  float64           `json:"gameTime"`
	Credits   int               `json:"credits"`
	Settings  Settings          `json:"settings"`
}

// Validate checks the aggregate, including that every component ID appears
// in exactly one place across the module slots and the inventory
func (s State) Validate() error {
	if err := s.Player.Validate(); err != nil {
		return err
	}
	if err := s.Ship.Validate(); err != nil {
		return err
	}
	if s.Credits < 0 {
		return shared.NewValidationError("credits", "cannot be negative")
	}
	if s.GameTime < 0 {
		return shared.NewValidationError("gameTime", "cannot be negative")
	}

	seen := make(map[string]bool)
	place := func(c component.Component) error {
		if seen[c.ID] {
			return shared.NewValidationError("components", "component "+c.ID+" is placed more than once")
		}
		seen[c.ID] = true
		return nil
	}
	for _, m := range s.Ship.Modules.All() {
		for _, c := range m.Installed() {
			if err := place(c); err != nil {
				return err
			}
		}
	}
	for _, c := range s.Inventory {
		if err := c.Validate(); err != nil {
			return err
		}
		if err := place(c); err != nil {
			return err
		}
	}

	for _, m := range s.Missions {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Owns reports whether a component ID is installed or in the inventory
func (s State) Owns(componentID string) bool {
	if _, _, _, ok := s.Ship.FindInstalled(componentID); ok {
		return true
	}
	_, _, ok := s.Inventory.Find(componentID)
	return ok
}

// FindMission returns the index and value of a mission
func (s State) FindMission(missionID string) (int, mission.Mission, error) {
	for i, m := range s.Missions {
		if m.ID == missionID {
			return i, m, nil
		}
	}
	return -1, mission.Mission{}, shared.NewMissionNotFoundError(missionID)
}

func (s State) withMission(i int, m mission.Mission) State {
	missions := make([]mission.Mission, len(s.Missions))
	copy(missions, s.Missions)
	missions[i] = m
	s.Missions = missions
	return s
}

// New assembles a fresh game with default settings and a recalculated ship
func New(p player.Player, s ship.Ship, inventory ship.Inventory, missions []mission.Mission, credits int) (State, error) {
	st := Recalculate(State{
		Player:    p,
		Ship:      s,
		Inventory: inventory,
		Missions:  missions,
		Credits:   credits,
		Settings:  DefaultSettings(),
	})
	if err := st.Validate(); err != nil {
		return State{}, err
	}
	return st, nil
}
