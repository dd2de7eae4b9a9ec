package jobs

import (
	"context"
	"time"

	"minjec-portal-backend/internal/logger"
)

// SweepExpiredCodes marks expired one-time codes as used so they can never
// be redeemed. Verification rejects stale codes on read as well; the sweep
// keeps the table from accumulating live-looking rows.
func (jr *JobRunner) SweepExpiredCodes() {
	jr.runWithRecovery("SweepExpiredCodes", func() {
		ctx := context.Background()

		count, err := jr.store.CodeRepository.MarkExpired(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to sweep expired codes", "error", err)
			return
		}

		logger.Info("Swept expired codes", "count", count)
	})
}
