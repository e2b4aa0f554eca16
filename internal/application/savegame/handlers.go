package savegame

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/mekanik-go/internal/application/common"
	appGame "github.com/andrescamacho/mekanik-go/internal/application/game"
	"github.com/andrescamacho/mekanik-go/internal/application/mediator"
	domainGame "github.com/andrescamacho/mekanik-go/internal/domain/game"
	domainSavegame "github.com/andrescamacho/mekanik-go/internal/domain/savegame"
)

var validate = validator.New()

// Handler serves every save, load, slot, export and import request.
// Loads replace the store's state wholesale and keep the saved performance
// and status as they were written.
type Handler struct {
	store *appGame.Store
	repo  domainSavegame.Repository
}

func NewHandler(store *appGame.Store, repo domainSavegame.Repository) *Handler {
	return &Handler{store: store, repo: repo}
}

func (h *Handler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if err := validate.Struct(request); err != nil {
		return nil, fmt.Errorf("invalid command: %w", err)
	}

	switch cmd := request.(type) {
	case *SaveGameCommand:
		return h.saveGame(ctx)
	case *LoadGameCommand:
		return h.loadGame(ctx)
	case *SaveToSlotCommand:
		return h.saveToSlot(ctx, cmd)
	case *LoadFromSlotCommand:
		return h.loadFromSlot(ctx, cmd)
	case *DeleteSlotCommand:
		return h.deleteSlot(ctx, cmd)
	case *ListSlotsQuery:
		slots, err := h.repo.ListSlots(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list save slots: %w", err)
		}
		return &SlotsResponse{Slots: slots}, nil
	case *ExportGameQuery:
		data, err := domainSavegame.Export(h.store.Snapshot())
		if err != nil {
			return nil, err
		}
		return &ExportResponse{Data: data}, nil
	case *ImportGameCommand:
		state, err := domainSavegame.Import(cmd.Data)
		if err != nil {
			return nil, err
		}
		return h.replace(ctx, state, "import")
	}
	return nil, fmt.Errorf("invalid request type")
}

func (h *Handler) saveGame(ctx context.Context) (mediator.Response, error) {
	state := h.store.Snapshot()
	if err := h.repo.SaveGame(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}
	common.LoggerFromContext(ctx).Log("DEBUG", "Game autosaved", map[string]interface{}{
		"player":    state.Player.Name,
		"game_time": state.GameTime,
	})
	return &appGame.StateResponse{State: state}, nil
}

func (h *Handler) loadGame(ctx context.Context) (mediator.Response, error) {
	state, err := h.repo.LoadGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	return h.replace(ctx, state, "autosave")
}

func (h *Handler) saveToSlot(ctx context.Context, cmd *SaveToSlotCommand) (mediator.Response, error) {
	slot, err := h.repo.SaveToSlot(ctx, h.store.Snapshot(), cmd.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to save to slot: %w", err)
	}
	common.LoggerFromContext(ctx).Log("INFO", "Game saved to slot", map[string]interface{}{
		"slot_id": slot.ID,
		"name":    slot.Name,
	})
	return &SlotResponse{Slot: slot}, nil
}

func (h *Handler) loadFromSlot(ctx context.Context, cmd *LoadFromSlotCommand) (mediator.Response, error) {
	state, err := h.repo.LoadFromSlot(ctx, cmd.SlotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}
	return h.replace(ctx, state, "slot:"+cmd.SlotID)
}

func (h *Handler) deleteSlot(ctx context.Context, cmd *DeleteSlotCommand) (mediator.Response, error) {
	if err := h.repo.DeleteSlot(ctx, cmd.SlotID); err != nil {
		return nil, fmt.Errorf("failed to delete slot: %w", err)
	}
	common.LoggerFromContext(ctx).Log("INFO", "Save slot deleted", map[string]interface{}{
		"slot_id": cmd.SlotID,
	})
	return &SlotsResponse{}, nil
}

func (h *Handler) replace(ctx context.Context, state domainGame.State, source string) (mediator.Response, error) {
	next, err := h.store.Dispatch(ctx, func(domainGame.State) (domainGame.State, error) {
		return state, nil
	})
	if err != nil {
		return nil, err
	}
	common.LoggerFromContext(ctx).Log("INFO", "Game state loaded", map[string]interface{}{
		"source": source,
		"player": next.Player.Name,
	})
	return &appGame.StateResponse{State: next}, nil
}

// RegisterHandlers wires the save handlers into m
func RegisterHandlers(m mediator.Mediator, store *appGame.Store, repo domainSavegame.Repository) error {
	h := NewHandler(store, repo)
	registrations := []error{
		mediator.RegisterHandler[*SaveGameCommand](m, h),
		mediator.RegisterHandler[*LoadGameCommand](m, h),
		mediator.RegisterHandler[*SaveToSlotCommand](m, h),
		mediator.RegisterHandler[*LoadFromSlotCommand](m, h),
		mediator.RegisterHandler[*DeleteSlotCommand](m, h),
		mediator.RegisterHandler[*ListSlotsQuery](m, h),
		mediator.RegisterHandler[*ExportGameQuery](m, h),
		mediator.RegisterHandler[*ImportGameCommand](m, h),
	}
	for _, err := range registrations {
		if err != nil {
			return fmt.Errorf("failed to register save handlers: %w", err)
		}
	}
	return nil
}
