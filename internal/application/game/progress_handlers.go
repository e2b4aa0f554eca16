package game

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mekanik-go/internal/application/common"
	"github.com/andrescamacho/mekanik-go/internal/application/mediator"
	domainGame "github.com/andrescamacho/mekanik-go/internal/domain/game"
)

// CompleteMissionHandler completes a mission and pays its rewards
type CompleteMissionHandler struct {
	store *Store
}

func NewCompleteMissionHandler(store *Store) *CompleteMissionHandler {
	return &CompleteMissionHandler{store: store}
}

func (h *CompleteMissionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CompleteMissionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	state, err := h.store.Dispatch(ctx, func(s domainGame.State) (domainGame.State, error) {
		return domainGame.CompleteMission(s, cmd.MissionID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete mission: %w", err)
	}

	common.LoggerFromContext(ctx).Log("INFO", "Mission completed", map[string]interface{}{
		"mission_id": cmd.MissionID,
		"credits":    state.Credits,
		"experience": state.Player.Experience,
	})
	return &StateResponse{State: state}, nil
}

// EvaluateObjectivesHandler ticks off performance-gated objectives
type EvaluateObjectivesHandler struct {
	store *Store
}

func NewEvaluateObjectivesHandler(store *Store) *EvaluateObjectivesHandler {
	return &EvaluateObjectivesHandler{store: store}
}

func (h *EvaluateObjectivesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*EvaluateObjectivesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	var newlyCompleted int
	state, err := h.store.Dispatch(ctx, func(s domainGame.State) (domainGame.State, error) {
		next, n, err := domainGame.EvaluateObjectives(s, cmd.MissionID)
		newlyCompleted = n
		return next, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate objectives: %w", err)
	}

	common.LoggerFromContext(ctx).Log("DEBUG", "Mission objectives evaluated", map[string]interface{}{
		"mission_id":      cmd.MissionID,
		"newly_completed": newlyCompleted,
	})
	return &EvaluateObjectivesResponse{State: state, NewlyCompleted: newlyCompleted}, nil
}

// CreditsHandler handles both credit commands
type CreditsHandler struct {
	store *Store
}

func NewCreditsHandler(store *Store) *CreditsHandler {
	return &CreditsHandler{store: store}
}

func (h *CreditsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	var mutate Mutation
	switch cmd := request.(type) {
	case *AddCreditsCommand:
		if err := validateCommand(cmd); err != nil {
			return nil, err
		}
		mutate = func(s domainGame.State) (domainGame.State, error) {
			return domainGame.AddCredits(s, cmd.Amount), nil
		}
	case *SubtractCreditsCommand:
		if err := validateCommand(cmd); err != nil {
			return nil, err
		}
		mutate = func(s domainGame.State) (domainGame.State, error) {
			return domainGame.SubtractCredits(s, cmd.Amount), nil
		}
	default:
		return nil, fmt.Errorf("invalid request type")
	}

	state, err := h.store.Dispatch(ctx, mutate)
	if err != nil {
		return nil, err
	}
	return &StateResponse{State: state}, nil
}

// TickGameTimeHandler advances the game clock
type TickGameTimeHandler struct {
	store *Store
}

func NewTickGameTimeHandler(store *Store) *TickGameTimeHandler {
	return &TickGameTimeHandler{store: store}
}

func (h *TickGameTimeHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*TickGameTimeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	state, err := h.store.Dispatch(ctx, func(s domainGame.State) (domainGame.State, error) {
		return domainGame.TickGameTime(s, cmd.Amount), nil
	})
	if err != nil {
		return nil, err
	}
	return &StateResponse{State: state}, nil
}
