package cron

import (
	"time"

	"fixpoint/services/booking"

	"go.uber.org/zap"
)

// StartExpirySweep runs the periodic reclaim of expired booking sessions,
// releasing their slot holds. A release that fails is retried on the next
// tick; capacity is never abandoned. The returned stop function ends the
// sweep.
func StartExpirySweep(svc booking.SessionService, interval time.Duration, logger *zap.Logger) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := svc.ReclaimExpired()
				if err != nil {
					logger.Error("session expiry sweep failed", zap.Error(err))
					continue
				}
				if n > 0 {
					logger.Info("expired sessions reclaimed", zap.Int("count", n))
				}
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}
