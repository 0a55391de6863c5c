package jobs

import (
	"context"
	"time"

	"leaguehq-backend/internal/logger"
)

// PurgeResolvedInvitations hard-deletes declined and expired invitations,
// and exhausted or expired invite links, once they are older than the
// configured retention window. Pending rows are never touched.
func (jr *JobRunner) PurgeResolvedInvitations() {
	jr.runWithRecovery("PurgeResolvedInvitations", func() {
		ctx := context.Background()

		retention := time.Duration(jr.config.Scheduler.RetentionDays) * 24 * time.Hour
		cutoff := time.Now().Add(-retention)

		deleted, err := jr.store.Invitations.DeleteResolvedBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge resolved invitations", "error", err)
			return
		}

		logger.Info("Purged resolved invitations", "deleted", deleted, "cutoff", cutoff)
	})
}
