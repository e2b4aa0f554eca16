package savegame

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/andrescamacho/mekanik-go/internal/domain/game"
	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
)

// AutosaveKey names the single autosave record
const AutosaveKey = "mekanikGameState"

// SlotInfo describes a named save without loading it
type SlotInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Timestamp   time.Time `json:"timestamp"`
	PlayerName  string    `json:"playerName"`
	PlayerLevel int       `json:"playerLevel"`
	ShipName    string    `json:"shipName"`
}

// Repository persists the autosave and named save slots.
//
// Stored states are returned verbatim: derived ship performance and status
// are whatever was saved, never recomputed on load.
type Repository interface {
	SaveGame(ctx context.Context, state game.State) error
	LoadGame(ctx context.Context) (game.State, error)
	SaveToSlot(ctx context.Context, state game.State, name string) (SlotInfo, error)
	LoadFromSlot(ctx context.Context, slotID string) (game.State, error)
	ListSlots(ctx context.Context) ([]SlotInfo, error)
	DeleteSlot(ctx context.Context, slotID string) error
}

const slotSuffixLength = 9

// NewSlotID builds a slot ID from the save time in unix milliseconds and a
// random base-36 suffix
func NewSlotID(now time.Time) string {
	var b strings.Builder
	for b.Len() < slotSuffixLength {
		b.WriteString(strconv.FormatUint(rand.Uint64(), 36))
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), b.String()[:slotSuffixLength])
}

// NewSlotInfo captures the metadata shown in a slot listing
func NewSlotInfo(id, name string, now time.Time, state game.State) (SlotInfo, error) {
	if strings.TrimSpace(name) == "" {
		return SlotInfo{}, shared.NewValidationError("name", "slot name cannot be empty")
	}
	return SlotInfo{
		ID:          id,
		Name:        name,
		Timestamp:   now,
		PlayerName:  state.Player.Name,
		PlayerLevel: state.Player.Level,
		ShipName:    state.Ship.Name,
	}, nil
}

// Export serializes a state to JSON
func Export(state game.State) (string, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to export game: %w", err)
	}
	return string(data), nil
}

// Import parses and validates an exported state
func Import(data string) (game.State, error) {
	var state game.State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return game.State{}, fmt.Errorf("failed to import game: %w", err)
	}
	if err := state.Validate(); err != nil {
		return game.State{}, fmt.Errorf("imported game is invalid: %w", err)
	}
	return state, nil
}
