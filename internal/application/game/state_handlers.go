package game

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mekanik-go/internal/application/common"
	"github.com/andrescamacho/mekanik-go/internal/application/mediator"
	domainGame "github.com/andrescamacho/mekanik-go/internal/domain/game"
)

// Factory builds the state for a brand new game
type Factory interface {
	NewGame(ctx context.Context) (domainGame.State, error)
}

// SetGameStateHandler replaces the whole state, as a load does
type SetGameStateHandler struct {
	store *Store
}

func NewSetGameStateHandler(store *Store) *SetGameStateHandler {
	return &SetGameStateHandler{store: store}
}

// Handle stores the given state as-is. Derived ship fields are kept as
// provided, not recomputed.
func (h *SetGameStateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetGameStateCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := cmd.State.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game state: %w", err)
	}

	state, err := h.store.Dispatch(ctx, func(domainGame.State) (domainGame.State, error) {
		return cmd.State, nil
	})
	if err != nil {
		return nil, err
	}
	return &StateResponse{State: state}, nil
}

// NewGameHandler starts over with a freshly generated game
type NewGameHandler struct {
	store   *Store
	factory Factory
}

func NewNewGameHandler(store *Store, factory Factory) *NewGameHandler {
	return &NewGameHandler{store: store, factory: factory}
}

func (h *NewGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*NewGameCommand); !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	fresh, err := h.factory.NewGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create new game: %w", err)
	}

	state, err := h.store.Dispatch(ctx, func(domainGame.State) (domainGame.State, error) {
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("INFO", "New game started", map[string]interface{}{
		"player":    state.Player.Name,
		"ship":      state.Ship.Name,
		"inventory": len(state.Inventory),
		"missions":  len(state.Missions),
	})
	return &StateResponse{State: state}, nil
}

// GetStateHandler returns the current snapshot
type GetStateHandler struct {
	store *Store
}

func NewGetStateHandler(store *Store) *GetStateHandler {
	return &GetStateHandler{store: store}
}

func (h *GetStateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetStateQuery); !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	return &StateResponse{State: h.store.Snapshot()}, nil
}

// RegisterHandlers wires every game command and query into m
func RegisterHandlers(m mediator.Mediator, store *Store, factory Factory) error {
	credits := NewCreditsHandler(store)
	registrations := []error{
		mediator.RegisterHandler[*InstallComponentCommand](m, NewInstallComponentHandler(store)),
		mediator.RegisterHandler[*RemoveComponentCommand](m, NewRemoveComponentHandler(store)),
		mediator.RegisterHandler[*RepairComponentCommand](m, NewRepairComponentHandler(store)),
		mediator.RegisterHandler[*DamageComponentCommand](m, NewDamageComponentHandler(store)),
		mediator.RegisterHandler[*RecalculatePerformanceCommand](m, NewRecalculatePerformanceHandler(store)),
		mediator.RegisterHandler[*ActivateEffectCommand](m, NewActivateEffectHandler(store)),
		mediator.RegisterHandler[*RepairInventoryComponentCommand](m, NewRepairInventoryComponentHandler(store)),
		mediator.RegisterHandler[*AddToInventoryCommand](m, NewAddToInventoryHandler(store)),
		mediator.RegisterHandler[*RemoveFromInventoryCommand](m, NewRemoveFromInventoryHandler(store)),
		mediator.RegisterHandler[*CompleteMissionCommand](m, NewCompleteMissionHandler(store)),
		mediator.RegisterHandler[*EvaluateObjectivesCommand](m, NewEvaluateObjectivesHandler(store)),
		mediator.RegisterHandler[*AddCreditsCommand](m, credits),
		mediator.RegisterHandler[*SubtractCreditsCommand](m, credits),
		mediator.RegisterHandler[*TickGameTimeCommand](m, NewTickGameTimeHandler(store)),
		mediator.RegisterHandler[*SetGameStateCommand](m, NewSetGameStateHandler(store)),
		mediator.RegisterHandler[*NewGameCommand](m, NewNewGameHandler(store, factory)),
		mediator.RegisterHandler[*GetStateQuery](m, NewGetStateHandler(store)),
	}
	for _, err := range registrations {
		if err != nil {
			return fmt.Errorf("failed to register game handlers: %w", err)
		}
	}
	return nil
}
