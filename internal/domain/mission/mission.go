package mission

import (
	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	"github.com/andrescamacho/mekanik-go/internal/domain/performance"
	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
)

// Status is the lifecycle state of a mission
type Status string

const (
	StatusAvailable Status = "available"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusActive, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Objective is one checklist item. When RequiredPerformance is set the
// objective can be ticked off automatically once the ship reaches it.
type Objective struct {
	ID                  string                   `json:"id"`
	Description         string                   `json:"description"`
	Completed           bool                     `json:"completed"`
	RequiredPerformance performance.Requirements `json:"requiredPerformance,omitempty"`
}

// Reward is paid out when a mission completes
type Reward struct {
	Credits    int                   `json:"credits"`
	Experience int                   `json:"experience"`
	Components []component.Component `json:"components,omitempty"`
}

type Mission struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Difficulty  int         `json:"difficulty"`
	TimeLimit   *float64    `json:"timeLimit"` // nil means no time limit
	Objectives  []Objective `json:"objectives"`
	Rewards     Reward      `json:"rewards"`
	Status      Status      `json:"status"`
}

// Validate checks identity, status and reward amounts
func (m Mission) Validate() error {
	if m.ID == "" {
		return shared.NewValidationError("mission.id", "cannot be empty")
	}
	if !m.Status.IsValid() {
		return shared.NewValidationError("mission.status", "invalid status "+string(m.Status))
	}
	if m.Rewards.Credits < 0 || m.Rewards.Experience < 0 {
		return shared.NewValidationError("mission.rewards", "cannot be negative")
	}
	for _, c := range m.Rewards.Components {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsCompleted reports whether the mission has already paid out
func (m Mission) IsCompleted() bool {
	return m.Status == StatusCompleted
}

// Complete returns a copy marked completed. A mission only completes once.
func (m Mission) Complete() (Mission, error) {
	if m.IsCompleted() {
		return m, shared.NewMissionAlreadyCompletedError(m.ID)
	}
	m.Status = StatusCompleted
	return m, nil
}

// EvaluateObjectives returns a copy with every performance-gated objective
// the ship now satisfies marked completed. Objectives without requirements
// and ones already completed are left alone.
func (m Mission) EvaluateObjectives(perf ship.ShipPerformance) (Mission, int) {
	objectives := make([]Objective, len(m.Objectives))
	copy(objectives, m.Objectives)

	newlyCompleted := 0
	for i, o := range objectives {
		if o.Completed || len(o.RequiredPerformance) == 0 {
			continue
		}
		if performance.MeetsRequirements(perf, o.RequiredPerformance) {
			objectives[i].Completed = true
			newlyCompleted++
		}
	}
	m.Objectives = objectives
	return m, newlyCompleted
}

// AllObjectivesCompleted reports whether every objective is ticked off
func (m Mission) AllObjectivesCompleted() bool {
	for _, o := range m.Objectives {
		if !o.Completed {
			return false
		}
	}
	return true
}
