package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"costconsole/backend/logging"
)

// StartScheduler refreshes the recommendation summaries right away and then
// every interval until ctx is done. It returns immediately.
func StartScheduler(ctx context.Context, interval time.Duration) {
	log := logging.L().Named("scheduler")
	if interval <= 0 {
		log.Info("Scheduler disabled")
		return
	}
	log.Info("Starting task scheduler", zap.Duration("interval", interval))
	go runEvery(ctx, interval, func(ctx context.Context) {
		if err := RefreshRecommendationSummaries(ctx); err != nil {
			log.Error("Failed to refresh recommendation summaries", zap.Error(err))
		}
	})
}

func runEvery(ctx context.Context, interval time.Duration, task func(context.Context)) {
	task(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			task(ctx)
		}
	}
}
