package savegame

import (
	domainSavegame "github.com/andrescamacho/mekanik-go/internal/domain/savegame"
)

type SaveGameCommand struct{}

type LoadGameCommand struct{}

type SaveToSlotCommand struct {
	Name string `validate:"required"`
}

type LoadFromSlotCommand struct {
	SlotID string `validate:"required"`
}

type DeleteSlotCommand struct {
	SlotID string `validate:"required"`
}

type ListSlotsQuery struct{}

type ExportGameQuery struct{}

type ImportGameCommand struct {
	Data string `validate:"required"`
}

type SlotResponse struct {
	Slot domainSavegame.SlotInfo `json:"slot"`
}

type SlotsResponse struct {
	Slots []domainSavegame.SlotInfo `json:"slots"`
}

type ExportResponse struct {
	Data string `json:"data"`
}
