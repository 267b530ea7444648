// Package worker runs the periodic notifier sweep.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fintrack/internal/services"
)

// NotifierConfig holds configuration for the notifier worker.
type NotifierConfig struct {
	// Interval is how often the sweep runs (default: once a day).
	Interval time.Duration

	// RunOnStart triggers an immediate sweep when the worker starts.
	RunOnStart bool
}

// DefaultNotifierConfig returns the daily-cadence defaults.
func DefaultNotifierConfig() NotifierConfig {
	return NotifierConfig{
		Interval:   24 * time.Hour,
		RunOnStart: true,
	}
}

// Notifier drives the sweep on a fixed cadence. The sweep itself only reads
// ledger state, so the worker can run alongside user-driven writes without
// extra synchronization.
type Notifier struct {
	sweeper *services.Sweeper
	config  NotifierConfig

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewNotifier(sweeper *services.Sweeper, config NotifierConfig) *Notifier {
	return &Notifier{sweeper: sweeper, config: config}
}

// Start begins the sweep loop. Returns an error if already running.
func (n *Notifier) Start(ctx context.Context) error {
	n.mu.Lock()
	if n.running {
		n.mu.Unlock()
		return fmt.Errorf("notifier is already running")
	}
	n.running = true
	n.stopCh = make(chan struct{})
	n.doneCh = make(chan struct{})
	n.mu.Unlock()

	go n.runLoop(ctx)

	slog.InfoContext(ctx, "Notifier started", "interval", n.config.Interval)
	return nil
}

// Stop gracefully stops the worker and waits for the loop to exit.
func (n *Notifier) Stop(ctx context.Context) error {
	n.mu.Lock()
	if !n.running {
		n.mu.Unlock()
		return nil
	}
	n.mu.Unlock()

	close(n.stopCh)

	select {
	case <-n.doneCh:
		slog.InfoContext(ctx, "Notifier stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Notifier stop timed out")
		return ctx.Err()
	}

	n.mu.Lock()
	n.running = false
	n.mu.Unlock()
	return nil
}

func (n *Notifier) runLoop(ctx context.Context) {
	defer close(n.doneCh)

	if n.config.RunOnStart {
		n.sweep(ctx, time.Now())
	}

	ticker := time.NewTicker(n.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-n.stopCh:
			return
		case now := <-ticker.C:
			n.sweep(ctx, now)
		}
	}
}

func (n *Notifier) sweep(ctx context.Context, now time.Time) {
	slog.InfoContext(ctx, "Running notification sweep")
	if err := n.sweeper.Sweep(ctx, now); err != nil {
		slog.ErrorContext(ctx, "Notification sweep failed", "error", err)
		return
	}
	slog.InfoContext(ctx, "Notification sweep complete",
		"next_run", now.Add(n.config.Interval).Format(time.RFC3339))
}
