package pollers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestBasePollerRunsImmediatelyAndOnInterval(t *testing.T) {
	var calls atomic.Int32
	p := NewBasePoller(DefaultConfig("counter", 5*time.Millisecond), func(context.Context) error {
		calls.Add(1)
		return nil
	})

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !p.IsRunning() {
		t.Error("IsRunning = false after Start")
	}
	waitFor(t, func() bool { return calls.Load() >= 3 })

	if err := p.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if p.IsRunning() {
		t.Error("IsRunning = true after Stop")
	}

	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != after {
		t.Error("poller kept running after Stop")
	}
}

func TestBasePollerRetries(t *testing.T) {
	var calls atomic.Int32
	config := DefaultConfig("flaky", time.Hour)
	config.RetryDelay = time.Millisecond
	p := NewBasePoller(config, func(context.Context) error {
		if calls.Add(1) < 3 {
			return errors.New("not yet")
		}
		return nil
	})

	if err := p.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer p.Stop()

	waitFor(t, func() bool { return calls.Load() == 3 })
	time.Sleep(10 * time.Millisecond)
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestBasePollerDisabledAndInvalid(t *testing.T) {
	config := DefaultConfig("off", time.Second)
	config.Enabled = false
	p := NewBasePoller(config, func(context.Context) error { return nil })
	if err := p.Start(context.Background()); err != nil || p.IsRunning() {
		t.Errorf("disabled poller: err=%v running=%v", err, p.IsRunning())
	}

	p = NewBasePoller(DefaultConfig("zero", 0), func(context.Context) error { return nil })
	if err := p.Start(context.Background()); err == nil {
		t.Error("expected an error for a zero interval")
	}
}

func TestManager(t *testing.T) {
	var a, b atomic.Int32
	m := NewManager()
	m.Register(NewBasePoller(DefaultConfig("b", time.Hour), func(context.Context) error { b.Add(1); return nil }))
	m.Register(NewBasePoller(DefaultConfig("a", time.Hour), func(context.Context) error { a.Add(1); return nil }))

	if names := m.ListPollers(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("ListPollers = %v", names)
	}

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitFor(t, func() bool { return a.Load() == 1 && b.Load() == 1 })

	if err := m.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
