package game

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mekanik-go/internal/application/common"
	"github.com/andrescamacho/mekanik-go/internal/application/mediator"
	domainGame "github.com/andrescamacho/mekanik-go/internal/domain/game"
)

// RepairInventoryComponentHandler repairs a component sitting in the inventory
type RepairInventoryComponentHandler struct {
	store *Store
}

func NewRepairInventoryComponentHandler(store *Store) *RepairInventoryComponentHandler {
	return &RepairInventoryComponentHandler{store: store}
}

func (h *RepairInventoryComponentHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RepairInventoryComponentCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	state, err := h.store.Dispatch(ctx, func(s domainGame.State) (domainGame.State, error) {
		return domainGame.RepairInventoryComponent(s, cmd.ComponentID, cmd.Amount)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to repair inventory component: %w", err)
	}

	common.LoggerFromContext(ctx).Log("INFO", "Inventory component repaired", map[string]interface{}{
		"component_id": cmd.ComponentID,
		"amount":       cmd.Amount,
	})
	return &StateResponse{State: state}, nil
}

// AddToInventoryHandler adds a new component to the inventory
type AddToInventoryHandler struct {
	store *Store
}

func NewAddToInventoryHandler(store *Store) *AddToInventoryHandler {
	return &AddToInventoryHandler{store: store}
}

func (h *AddToInventoryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AddToInventoryCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	state, err := h.store.Dispatch(ctx, func(s domainGame.State) (domainGame.State, error) {
		return domainGame.AddToInventory(s, cmd.Component)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add component: %w", err)
	}

	common.LoggerFromContext(ctx).Log("INFO", "Component added to inventory", map[string]interface{}{
		"component_id": cmd.Component.ID,
		"name":         cmd.Component.Name,
	})
	return &StateResponse{State: state}, nil
}

// RemoveFromInventoryHandler discards an inventory component
type RemoveFromInventoryHandler struct {
	store *Store
}

func NewRemoveFromInventoryHandler(store *Store) *RemoveFromInventoryHandler {
	return &RemoveFromInventoryHandler{store: store}
}

func (h *RemoveFromInventoryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RemoveFromInventoryCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	state, err := h.store.Dispatch(ctx, func(s domainGame.State) (domainGame.State, error) {
		return domainGame.RemoveFromInventory(s, cmd.ComponentID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove component from inventory: %w", err)
	}

	common.LoggerFromContext(ctx).Log("INFO", "Component removed from inventory", map[string]interface{}{
		"component_id": cmd.ComponentID,
	})
	return &StateResponse{State: state}, nil
}
