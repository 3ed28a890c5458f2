package pollers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rmitchellscott/monodither/internal/database"
	"github.com/rmitchellscott/monodither/internal/logging"
	"github.com/rmitchellscott/monodither/internal/middleware"
)

// NewRunCleanupPoller deletes recorded runs older than retention.
func NewRunCleanupPoller(db *gorm.DB, retention time.Duration, interval time.Duration) *BasePoller {
	return NewBasePoller(DefaultConfig("run_cleanup", interval), func(ctx context.Context) error {
		removed, err := database.CleanupOldRuns(db.WithContext(ctx), retention)
		if err != nil {
			return err
		}
		if removed > 0 {
			logging.InfoWithComponent(logging.ComponentMaintainer, "Removed old runs", "count", removed, "retention", retention)
		}
		return nil
	})
}

// NewRateLimiterCleanupPoller forgets idle rate limit clients.
func NewRateLimiterCleanupPoller(rl *middleware.RateLimiter, interval time.Duration) *BasePoller {
	config := DefaultConfig("rate_limiter_cleanup", interval)
	config.MaxRetries = 1
	return NewBasePoller(config, func(context.Context) error {
		if removed := rl.Cleanup(); removed > 0 {
			logging.DebugWithComponent(logging.ComponentMaintainer, "Dropped idle rate limit clients", "count", removed)
		}
		return nil
	})
}
