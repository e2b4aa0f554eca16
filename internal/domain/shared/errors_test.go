package shared_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
)

func TestDomainErrorsMatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("install failed: %w", shared.NewCategoryMismatchError("deflector", "shield", "engine"))

	var mismatch *shared.CategoryMismatchError
	assert.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "deflector", mismatch.ComponentID)
	assert.Equal(t, "engine", mismatch.ModuleCategory)
	assert.Contains(t, err.Error(), "cannot be installed in the engine module")

	var notFound *shared.ComponentNotFoundError
	assert.False(t, errors.As(err, &notFound))
}

func TestValidationErrorMessage(t *testing.T) {
	err := shared.NewValidationError("durability", "must be between 0 and 100")

	assert.Equal(t, "durability: must be between 0 and 100", err.Error())
}

func TestMockClockAdvance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := shared.NewMockClock(start)

	clock.Advance(90 * time.Second)

	assert.Equal(t, start.Add(90*time.Second), clock.Now())
}
