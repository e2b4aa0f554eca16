package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/mekanik-go/internal/domain/game"
	"github.com/andrescamacho/mekanik-go/internal/domain/savegame"
	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
)

// GormSaveRepository implements savegame.Repository using GORM
type GormSaveRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

var _ savegame.Repository = (*GormSaveRepository)(nil)

// NewGormSaveRepository creates a new GORM save repository
func NewGormSaveRepository(db *gorm.DB, clock shared.Clock) *GormSaveRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormSaveRepository{db: db, clock: clock}
}

// SaveGame overwrites the autosave
func (r *GormSaveRepository) SaveGame(ctx context.Context, state game.State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	model := &GameStateModel{
		Key:       savegame.AutosaveKey,
		State:     data,
		UpdatedAt: r.clock.Now(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "save_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save game: %w", result.Error)
	}
	return nil
}

// LoadGame reads the autosave
func (r *GormSaveRepository) LoadGame(ctx context.Context) (game.State, error) {
	var model GameStateModel
	result := r.db.WithContext(ctx).Where("save_key = ?", savegame.AutosaveKey).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return game.State{}, shared.NewNoSavedGameError()
		}
		return game.State{}, fmt.Errorf("failed to load game: %w", result.Error)
	}
	return decodeState(model.State)
}

// SaveToSlot stores the state under a new slot
func (r *GormSaveRepository) SaveToSlot(ctx context.Context, state game.State, name string) (savegame.SlotInfo, error) {
	now := r.clock.Now()
	info, err := savegame.NewSlotInfo(savegame.NewSlotID(now), name, now, state)
	if err != nil {
		return savegame.SlotInfo{}, err
	}
	data, err := encodeState(state)
	if err != nil {
		return savegame.SlotInfo{}, err
	}

	model := &SaveSlotModel{
		ID:          info.ID,
		Name:        info.Name,
		Timestamp:   info.Timestamp,
		PlayerName:  info.PlayerName,
		PlayerLevel: info.PlayerLevel,
		ShipName:    info.ShipName,
		State:       data,
	}
	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return savegame.SlotInfo{}, fmt.Errorf("failed to save slot: %w", result.Error)
	}
	return info, nil
}

// LoadFromSlot reads the state stored in a slot
func (r *GormSaveRepository) LoadFromSlot(ctx context.Context, slotID string) (game.State, error) {
	var model SaveSlotModel
	result := r.db.WithContext(ctx).Where("id = ?", slotID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return game.State{}, shared.NewSaveSlotNotFoundError(slotID)
		}
		return game.State{}, fmt.Errorf("failed to load slot: %w", result.Error)
	}
	return decodeState(model.State)
}

// ListSlots returns slot metadata, newest first
func (r *GormSaveRepository) ListSlots(ctx context.Context) ([]savegame.SlotInfo, error) {
	var models []SaveSlotModel
	result := r.db.WithContext(ctx).
		Select("id", "name", "timestamp", "player_name", "player_level", "ship_name").
		Order("timestamp DESC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list slots: %w", result.Error)
	}

	slots := make([]savegame.SlotInfo, 0, len(models))
	for _, m := range models {
		slots = append(slots, savegame.SlotInfo{
			ID:          m.ID,
			Name:        m.Name,
			Timestamp:   m.Timestamp,
			PlayerName:  m.PlayerName,
			PlayerLevel: m.PlayerLevel,
			ShipName:    m.ShipName,
		})
	}
	return slots, nil
}

// DeleteSlot removes a slot and its state
func (r *GormSaveRepository) DeleteSlot(ctx context.Context, slotID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", slotID).Delete(&SaveSlotModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete slot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewSaveSlotNotFoundError(slotID)
	}
	return nil
}

func encodeState(state game.State) (string, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to encode game state: %w", err)
	}
	return string(data), nil
}

// decodeState restores a stored state verbatim; derived ship fields are not
// recomputed
func decodeState(data string) (game.State, error) {
	var state game.State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return game.State{}, fmt.Errorf("failed to decode game state: %w", err)
	}
	return state, nil
}
