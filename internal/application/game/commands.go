package game

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	domainGame "github.com/andrescamacho/mekanik-go/internal/domain/game"
)

var validate = validator.New()

// validateCommand checks a command's struct tags
func validateCommand(cmd interface{}) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("invalid command: %w", err)
	}
	return nil
}

// Loadout commands

type InstallComponentCommand struct {
	Module      string `json:"module" validate:"required,oneof=engine shield power"`
	Slot        string `json:"slot" validate:"required,oneof=slot1 slot2 slot3"`
	ComponentID string `json:"componentId" validate:"required"`
}

type RemoveComponentCommand struct {
	Module string `json:"module" validate:"required,oneof=engine shield power"`
	Slot   string `json:"slot" validate:"required,oneof=slot1 slot2 slot3"`
}

type RepairComponentCommand struct {
	Module string  `json:"module" validate:"required,oneof=engine shield power"`
	Slot   string  `json:"slot" validate:"required,oneof=slot1 slot2 slot3"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

type DamageComponentCommand struct {
	Module string  `json:"module" validate:"required,oneof=engine shield power"`
	Slot   string  `json:"slot" validate:"required,oneof=slot1 slot2 slot3"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

type RecalculatePerformanceCommand struct{}

type ActivateEffectCommand struct {
	ComponentID string `json:"componentId" validate:"required"`
	EffectID    string `json:"effectId" validate:"required"`
}

// Inventory commands

type RepairInventoryComponentCommand struct {
	ComponentID string  `json:"componentId" validate:"required"`
	Amount      float64 `json:"amount" validate:"gte=0"`
}

type AddToInventoryCommand struct {
	Component component.Component `json:"component"`
}

type RemoveFromInventoryCommand struct {
	ComponentID string `json:"componentId" validate:"required"`
}

// Progress commands

type CompleteMissionCommand struct {
	MissionID string `json:"missionId" validate:"required"`
}

type EvaluateObjectivesCommand struct {
	MissionID string `json:"missionId" validate:"required"`
}

type AddCreditsCommand struct {
	Amount int `json:"amount" validate:"gte=0"`
}

type SubtractCreditsCommand struct {
	Amount int `json:"amount" validate:"gte=0"`
}

type TickGameTimeCommand struct {
	Amount float64 `json:"amount" validate:"gte=0"`
}

type SetGameStateCommand struct {
	State domainGame.State `json:"state"`
}

type NewGameCommand struct{}

// Queries

type GetStateQuery struct{}

// StateResponse carries the state after a command ran
type StateResponse struct {
	State domainGame.State `json:"state"`
}

// EvaluateObjectivesResponse reports how many objectives were ticked off
type EvaluateObjectivesResponse struct {
	State          domainGame.State `json:"state"`
	NewlyCompleted int              `json:"newlyCompleted"`
}
