package pollers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rmitchellscott/monodither/internal/logging"
)

// Manager starts and stops a set of pollers together.
type Manager struct {
	mu      sync.Mutex
	pollers map[string]Poller
	running bool
}

// NewManager creates a new poller manager
func NewManager() *Manager {
	return &Manager{
		pollers: make(map[string]Poller),
	}
}

// Register adds a poller to the manager
func (m *Manager) Register(poller Poller) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollers[poller.Name()] = poller
	logging.DebugWithComponent(logging.ComponentMaintainer, "Registered poller", "poller", poller.Name())
}

// Start starts all registered pollers. It returns the first start error
// after attempting every poller.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}
	m.running = true

	var firstErr error
	for _, name := range m.namesLocked() {
		if err := m.pollers[name].Start(ctx); err != nil {
			logging.ErrorWithComponent(logging.ComponentMaintainer, "Failed to start poller", "poller", name, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("start %s: %w", name, err)
			}
		}
	}
	return firstErr
}

// Stop stops all pollers concurrently and waits for them.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return nil
	}

	var wg sync.WaitGroup
	for name, poller := range m.pollers {
		wg.Add(1)
		go func(name string, p Poller) {
			defer wg.Done()
			if err := p.Stop(); err != nil {
				logging.ErrorWithComponent(logging.ComponentMaintainer, "Error stopping poller", "poller", name, "error", err)
			}
		}(name, poller)
	}
	wg.Wait()
	m.running = false
	return nil
}

// ListPollers returns all registered poller names, sorted.
func (m *Manager) ListPollers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.namesLocked()
}

func (m *Manager) namesLocked() []string {
	names := make([]string, 0, len(m.pollers))
	for name := range m.pollers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
