package game

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mekanik-go/internal/application/common"
	"github.com/andrescamacho/mekanik-go/internal/application/mediator"
	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	domainGame "github.com/andrescamacho/mekanik-go/internal/domain/game"
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
)

func parseLocation(module, slot string) (component.Category, ship.SlotID, error) {
	category, err := component.ParseCategory(module)
	if err != nil {
		return "", "", err
	}
	slotID, err := ship.ParseSlot(slot)
	if err != nil {
		return "", "", err
	}
	return category, slotID, nil
}

// InstallComponentHandler moves an inventory component into a module slot
type InstallComponentHandler struct {
	store *Store
}

func NewInstallComponentHandler(store *Store) *InstallComponentHandler {
	return &InstallComponentHandler{store: store}
}

func (h *InstallComponentHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*InstallComponentCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	category, slot, err := parseLocation(cmd.Module, cmd.Slot)
	if err != nil {
		return nil, err
	}

	state, err := h.store.Dispatch(ctx, func(s domainGame.State) (domainGame.State, error) {
		return domainGame.InstallComponent(s, category, slot, cmd.ComponentID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to install component: %w", err)
	}

	common.LoggerFromContext(ctx).Log("INFO", "Component installed", map[string]interface{}{
		"action":       "install",
		"module":       cmd.Module,
		"slot":         cmd.Slot,
		"component_id": cmd.ComponentID,
		"speed":        state.Ship.Performance.Speed,
	})
	return &StateResponse{State: state}, nil
}

// RemoveComponentHandler returns a slot's component to the inventory
type RemoveComponentHandler struct {
	store *Store
}

func NewRemoveComponentHandler(store *Store) *RemoveComponentHandler {
	return &RemoveComponentHandler{store: store}
}

func (h *RemoveComponentHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RemoveComponentCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	category, slot, err := parseLocation(cmd.Module, cmd.Slot)
	if err != nil {
		return nil, err
	}

	state, err := h.store.Dispatch(ctx, func(s domainGame.State) (domainGame.State, error) {
		return domainGame.RemoveComponent(s, category, slot)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove component: %w", err)
	}

	common.LoggerFromContext(ctx).Log("INFO", "Component removed", map[string]interface{}{
		"action": "remove",
		"module": cmd.Module,
		"slot":   cmd.Slot,
	})
	return &StateResponse{State: state}, nil
}

// RepairComponentHandler raises an installed component's durability
type RepairComponentHandler struct {
	store *Store
}

func NewRepairComponentHandler(store *Store) *RepairComponentHandler {
	return &RepairComponentHandler{store: store}
}

func (h *RepairComponentHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RepairComponentCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	category, slot, err := parseLocation(cmd.Module, cmd.Slot)
	if err != nil {
		return nil, err
	}

	state, err := h.store.Dispatch(ctx, func(s domainGame.State) (domainGame.State, error) {
		return domainGame.RepairComponent(s, category, slot, cmd.Amount)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to repair component: %w", err)
	}

	common.LoggerFromContext(ctx).Log("INFO", "Component repaired", map[string]interface{}{
		"action": "repair",
		"module": cmd.Module,
		"slot":   cmd.Slot,
		"amount": cmd.Amount,
	})
	return &StateResponse{State: state}, nil
}

// DamageComponentHandler lowers an installed component's durability
type DamageComponentHandler struct {
	store *Store
}

func NewDamageComponentHandler(store *Store) *DamageComponentHandler {
	return &DamageComponentHandler{store: store}
}

func (h *DamageComponentHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DamageComponentCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	category, slot, err := parseLocation(cmd.Module, cmd.Slot)
	if err != nil {
		return nil, err
	}

	state, err := h.store.Dispatch(ctx, func(s domainGame.State) (domainGame.State, error) {
		return domainGame.DamageComponent(s, category, slot, cmd.Amount)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to damage component: %w", err)
	}

	logger := common.LoggerFromContext(ctx)
	logger.Log("INFO", "Component damaged", map[string]interface{}{
		"action": "damage",
		"module": cmd.Module,
		"slot":   cmd.Slot,
		"amount": cmd.Amount,
	})
	if active := state.Ship.Status.Active(); len(active) > 0 {
		logger.Log("WARN", "Ship hazards active", map[string]interface{}{
			"flags": active,
		})
	}
	return &StateResponse{State: state}, nil
}

// RecalculatePerformanceHandler refreshes the ship's derived fields
type RecalculatePerformanceHandler struct {
	store *Store
}

func NewRecalculatePerformanceHandler(store *Store) *RecalculatePerformanceHandler {
	return &RecalculatePerformanceHandler{store: store}
}

func (h *RecalculatePerformanceHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*RecalculatePerformanceCommand); !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	state, err := h.store.Dispatch(ctx, func(s domainGame.State) (domainGame.State, error) {
		return domainGame.Recalculate(s), nil
	})
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("DEBUG", "Ship performance recalculated", map[string]interface{}{
		"speed":           state.Ship.Performance.Speed,
		"shield_strength": state.Ship.Performance.ShieldStrength,
		"power_output":    state.Ship.Performance.PowerOutput,
		"heat_management": state.Ship.Performance.HeatManagement,
	})
	return &StateResponse{State: state}, nil
}

// ActivateEffectHandler fires a special effect on an installed component
type ActivateEffectHandler struct {
	store *Store
}

func NewActivateEffectHandler(store *Store) *ActivateEffectHandler {
	return &ActivateEffectHandler{store: store}
}

func (h *ActivateEffectHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ActivateEffectCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	state, err := h.store.Dispatch(ctx, func(s domainGame.State) (domainGame.State, error) {
		return domainGame.ActivateEffect(s, cmd.ComponentID, cmd.EffectID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to activate effect: %w", err)
	}

	common.LoggerFromContext(ctx).Log("INFO", "Special effect activated", map[string]interface{}{
		"component_id": cmd.ComponentID,
		"effect_id":    cmd.EffectID,
	})
	return &StateResponse{State: state}, nil
}
