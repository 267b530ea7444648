package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/notify"
)

// SweepConfig tunes the notifier comparisons.
type SweepConfig struct {
	// UnusualSpendingFactor flags a transaction whose amount exceeds this
	// multiple of the owner's average in the same category.
	UnusualSpendingFactor float64

	// DeadlineWindow is how far ahead of a goal's end date the deadline
	// reminder fires.
	DeadlineWindow time.Duration
}

// DefaultSweepConfig returns the production thresholds.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		UnusualSpendingFactor: 1.5,
		DeadlineWindow:        7 * 24 * time.Hour,
	}
}

// Sweeper compares live ledger state against thresholds and emits
// notifications through the sink. It only reads; financial totals are never
// touched, so it can run concurrently with user-driven writes.
type Sweeper struct {
	store  ledger.Store
	sink   notify.Sink
	config SweepConfig
}

func NewSweeper(store ledger.Store, sink notify.Sink, config SweepConfig) *Sweeper {
	return &Sweeper{store: store, sink: sink, config: config}
}

// Sweep runs the three checks concurrently. Each check reads its own slice
// of the ledger; sink failures are logged and swallowed, only read failures
// surface.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.checkUnusualSpending(gctx) })
	g.Go(func() error { return s.checkGoalDeadlines(gctx, now) })
	g.Go(func() error { return s.checkOverBudget(gctx) })
	return g.Wait()
}

// checkUnusualSpending flags transactions whose amount exceeds the
// configured multiple of the owner's average spending in that category.
func (s *Sweeper) checkUnusualSpending(ctx context.Context) error {
	transactions, err := s.store.AllTransactions(ctx)
	if err != nil {
		return &core.StorageError{Op: "load transactions for sweep", Err: err}
	}

	for _, t := range transactions {
		avg, err := s.averageSpending(ctx, t.Owner, t.Category)
		if err != nil {
			return err
		}
		if avg <= 0 || t.Amount.Float64() <= s.config.UnusualSpendingFactor*avg {
			continue
		}
		body := fmt.Sprintf("Unusual spending detected in category: %s. You spent %s, which is higher than your average spending.",
			t.Category, t.Amount.Format())
		s.notify(ctx, t.Owner, "Unusual Spending Alert", body)
	}
	return nil
}

// checkGoalDeadlines reminds owners of goals ending within the deadline
// window that are not completed yet.
func (s *Sweeper) checkGoalDeadlines(ctx context.Context, now time.Time) error {
	goals, err := s.store.AllGoals(ctx)
	if err != nil {
		return &core.StorageError{Op: "load goals for sweep", Err: err}
	}

	cutoff := now.Add(s.config.DeadlineWindow)
	for _, g := range goals {
		if g.Status == core.GoalCompleted || !g.End.Before(cutoff) {
			continue
		}
		body := fmt.Sprintf("Your financial goal '%s' is due in 7 days. You have saved %s out of %s.",
			g.Name, g.Saved.Format(), g.Target.Format())
		s.notify(ctx, g.Owner, "Upcoming Goal Deadline", body)
	}
	return nil
}

// checkOverBudget alerts owners whose running spent total has passed the
// budget target.
func (s *Sweeper) checkOverBudget(ctx context.Context) error {
	budgets, err := s.store.AllBudgets(ctx)
	if err != nil {
		return &core.StorageError{Op: "load budgets for sweep", Err: err}
	}

	for _, b := range budgets {
		if !b.Exceeded() {
			continue
		}
		body := fmt.Sprintf("You exceeded your %s budget: spent %s of %s.",
			b.Category, b.Spent.Format(), b.Target.Format())
		s.notify(ctx, b.Owner, "Budget Exceeded", body)
	}
	return nil
}

// averageSpending returns the mean amount of the owner's transactions in the
// category, zero when there are none.
func (s *Sweeper) averageSpending(ctx context.Context, owner string, category core.Category) (float64, error) {
	transactions, err := s.store.TransactionsByOwnerAndCategory(ctx, owner, category)
	if err != nil {
		return 0, &core.StorageError{Op: "load category transactions for sweep", Err: err}
	}
	if len(transactions) == 0 {
		return 0, nil
	}
	var totalCents int64
	for _, t := range transactions {
		totalCents += t.Amount.Cents
	}
	return float64(totalCents) / 100.0 / float64(len(transactions)), nil
}

func (s *Sweeper) notify(ctx context.Context, owner, subject, body string) {
	if err := s.sink.Notify(ctx, owner, subject, body); err != nil {
		slog.ErrorContext(ctx, "Failed to publish notification",
			"owner", owner, "subject", subject, "error", err)
	}
}
