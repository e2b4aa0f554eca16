package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Component-related errors

type ComponentError struct {
	*DomainError
	ComponentID string
}

func NewComponentError(message, componentID string) *ComponentError {
	return &ComponentError{DomainError: &DomainError{Message: message}, ComponentID: componentID}
}

type ComponentNotFoundError struct {
	*ComponentError
}

func NewComponentNotFoundError(componentID string) *ComponentNotFoundError {
	return &ComponentNotFoundError{
		ComponentError: NewComponentError(fmt.Sprintf("component not found: %s", componentID), componentID),
	}
}

type CategoryMismatchError struct {
	*ComponentError
	ComponentCategory string
	ModuleCategory    string
}

func NewCategoryMismatchError(componentID, componentCategory, moduleCategory string) *CategoryMismatchError {
	return &CategoryMismatchError{
		ComponentError: NewComponentError(
			fmt.Sprintf("component %s is a %s component and cannot be installed in the %s module",
				componentID, componentCategory, moduleCategory),
			componentID,
		),
		ComponentCategory: componentCategory,
		ModuleCategory:    moduleCategory,
	}
}

type EffectNotFoundError struct {
	*ComponentError
	EffectID string
}

func NewEffectNotFoundError(componentID, effectID string) *EffectNotFoundError {
	return &EffectNotFoundError{
		ComponentError: NewComponentError(
			fmt.Sprintf("component %s has no special effect %s", componentID, effectID),
			componentID,
		),
		EffectID: effectID,
	}
}

// Module-related errors

type InvalidSlotError struct {
	*DomainError
	Slot string
}

func NewInvalidSlotError(slot string) *InvalidSlotError {
	return &InvalidSlotError{
		DomainError: &DomainError{Message: fmt.Sprintf("invalid slot: %q", slot)},
		Slot:        slot,
	}
}

type InvalidCategoryError struct {
	*DomainError
	Category string
}

func NewInvalidCategoryError(category string) *InvalidCategoryError {
	return &InvalidCategoryError{
		DomainError: &DomainError{Message: fmt.Sprintf("invalid module category: %q", category)},
		Category:    category,
	}
}

// Mission errors

type MissionNotFoundError struct {
	*DomainError
	MissionID string
}

func NewMissionNotFoundError(missionID string) *MissionNotFoundError {
	return &MissionNotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("mission not found: %s", missionID)},
		MissionID:   missionID,
	}
}

type MissionAlreadyCompletedError struct {
	*DomainError
	MissionID string
}

func NewMissionAlreadyCompletedError(missionID string) *MissionAlreadyCompletedError {
	return &MissionAlreadyCompletedError{
		DomainError: &DomainError{Message: fmt.Sprintf("mission %s is already completed", missionID)},
		MissionID:   missionID,
	}
}

// Save errors

type SaveSlotNotFoundError struct {
	*DomainError
	SlotID string
}

func NewSaveSlotNotFoundError(slotID string) *SaveSlotNotFoundError {
	return &SaveSlotNotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("save slot not found: %s", slotID)},
		SlotID:      slotID,
	}
}

type NoSavedGameError struct {
	*DomainError
}

func NewNoSavedGameError() *NoSavedGameError {
	return &NoSavedGameError{DomainError: &DomainError{Message: "no saved game found"}}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
