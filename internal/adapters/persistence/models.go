package persistence

import (
	"time"
)

// GameStateModel represents the game_states table. It holds the single
// autosave row, keyed by name.
type GameStateModel struct {
	Key       string    `gorm:"column:save_key;primaryKey"`
	State     string    `gorm:"column:state;type:text;not null"` // JSON as text
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (GameStateModel) TableName() string {
	return "game_states"
}

// SaveSlotModel represents the save_slots table
type SaveSlotModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Timestamp   time.Time `gorm:"column:timestamp;not null;index"`
	PlayerName  string    `gorm:"column:player_name"`
	PlayerLevel int       `gorm:"column:player_level"`
	ShipName    string    `gorm:"column:ship_name"`
	State       string    `gorm:"column:state;type:text;not null"` // JSON as text
}

func (SaveSlotModel) TableName() string {
	return "save_slots"
}
