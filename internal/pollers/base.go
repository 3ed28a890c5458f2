package pollers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rmitchellscott/monodither/internal/logging"
)

// BasePoller runs pollFunc immediately and then on every interval, retrying
// failures up to MaxRetries times.
type BasePoller struct {
	config   PollerConfig
	pollFunc func(ctx context.Context) error

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewBasePoller creates a new base poller instance
func NewBasePoller(config PollerConfig, pollFunc func(ctx context.Context) error) *BasePoller {
	if config.MaxRetries < 1 {
		config.MaxRetries = 1
	}
	return &BasePoller{
		config:   config,
		pollFunc: pollFunc,
	}
}

// Name returns the name of the poller
func (p *BasePoller) Name() string {
	return p.config.Name
}

// Start begins the polling loop. Starting a running or disabled poller is a
// no-op.
func (p *BasePoller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}
	if !p.config.Enabled {
		logging.InfoWithComponent(logging.ComponentMaintainer, "Poller disabled, skipping start", "poller", p.config.Name)
		return nil
	}
	if p.config.Interval <= 0 {
		return errors.New("poller " + p.config.Name + ": interval must be positive")
	}

	logging.InfoWithComponent(logging.ComponentMaintainer, "Starting poller", "poller", p.config.Name, "interval", p.config.Interval)

	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	go p.pollLoop(loopCtx, p.done)
	return nil
}

// Stop cancels the loop and waits for the current poll to return.
func (p *BasePoller) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return nil
	}

	p.cancel()
	<-p.done
	p.running = false

	logging.InfoWithComponent(logging.ComponentMaintainer, "Poller stopped", "poller", p.config.Name)
	return nil
}

// IsRunning returns true if the poller is currently running
func (p *BasePoller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *BasePoller) pollLoop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	p.executeWithRetry(ctx)

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.executeWithRetry(ctx)
		}
	}
}

func (p *BasePoller) executeWithRetry(ctx context.Context) {
	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return
		}

		pollCtx, cancel := context.WithTimeout(ctx, p.pollTimeout())
		err := p.pollFunc(pollCtx)
		cancel()
		if err == nil {
			return
		}

		logging.WarnWithComponent(logging.ComponentMaintainer, "Poll attempt failed",
			"poller", p.config.Name, "attempt", attempt, "max_retries", p.config.MaxRetries, "error", err)

		if attempt < p.config.MaxRetries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(p.config.RetryDelay):
			}
		}
	}

	logging.ErrorWithComponent(logging.ComponentMaintainer, "Poller gave up", "poller", p.config.Name, "attempts", p.config.MaxRetries)
}

func (p *BasePoller) pollTimeout() time.Duration {
	if p.config.Timeout > 0 {
		return p.config.Timeout
	}
	return p.config.Interval
}
