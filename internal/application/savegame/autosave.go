package savegame

import (
	"context"

	"github.com/andrescamacho/mekanik-go/internal/application/common"
	appGame "github.com/andrescamacho/mekanik-go/internal/application/game"
	domainSavegame "github.com/andrescamacho/mekanik-go/internal/domain/savegame"
)

// Autosave writes every committed state to the autosave key until ctx is
// cancelled, then writes the final state once more. States that arrive while
// a save is running are coalesced into the latest one.
func Autosave(ctx context.Context, store *appGame.Store, repo domainSavegame.Repository) {
	logger := common.LoggerFromContext(ctx)
	updates := store.Subscribe()
	defer store.Unsubscribe(updates)

	for {
		select {
		case <-ctx.Done():
			// the parent is gone; the last write must still land
			final := context.WithoutCancel(ctx)
			if err := repo.SaveGame(final, store.Snapshot()); err != nil {
				logger.Log("ERROR", "Final autosave failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
			return
		case state, ok := <-updates:
			if !ok {
				return
			}
			if err := repo.SaveGame(ctx, state); err != nil {
				logger.Log("ERROR", "Autosave failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}
