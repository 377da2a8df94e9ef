package reconciler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunPeriodic runs a pass immediately and then every interval until ctx is
// done. It returns at once; passes run on a background goroutine. A failed
// pass is logged and the schedule continues.
func (s *Syncer) RunPeriodic(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		s.scheduled(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.scheduled(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *Syncer) scheduled(ctx context.Context) {
	if _, err := s.RunAs(ctx, TriggerScheduled); err != nil {
		s.logger.Error("Scheduled sync failed", zap.Error(err))
	}
}
