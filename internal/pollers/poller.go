package pollers

import (
	"context"
	"time"
)

// Poller is a background job run on a fixed interval.
type Poller interface {
	Name() string
	Start(ctx context.Context) error
	Stop() error
	IsRunning() bool
}

// PollerConfig holds configuration for a poller
type PollerConfig struct {
	Name       string
	Interval   time.Duration
	Enabled    bool
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// DefaultConfig returns a default poller configuration
func DefaultConfig(name string, interval time.Duration) PollerConfig {
	return PollerConfig{
		Name:       name,
		Interval:   interval,
		Enabled:    true,
		MaxRetries: 3,
		RetryDelay: 10 * time.Second,
		Timeout:    time.Minute,
	}
}
