package jobs

import (
	"context"

	"builderclub-backend/internal/logger"
)

// SyncEvents refreshes the event mirror from the club calendar.
func (jr *JobRunner) SyncEvents() {
	_ = jr.runWithRecovery("SyncEvents", func(ctx context.Context) error {
		res, err := jr.services.Events.SyncEvents(ctx)
		if err != nil {
			return err
		}
		logger.Info("Event mirror refreshed", "synced", res.Synced, "synced_at", res.SyncedAt)
		return nil
	})
}
