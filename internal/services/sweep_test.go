package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger/memory"
)

type recorderSink struct {
	mu       sync.Mutex
	failWith error
	sent     []sentNotification
}

type sentNotification struct {
	Owner   string
	Subject string
	Body    string
}

func (r *recorderSink) Notify(_ context.Context, owner, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.sent = append(r.sent, sentNotification{Owner: owner, Subject: subject, Body: body})
	return nil
}

func (r *recorderSink) subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Subject)
	}
	sort.Strings(out)
	return out
}

func TestSweepUnusualSpending(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	sink := &recorderSink{}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// Three ordinary FOOD expenses and one outlier. Average over all four is
	// (10+10+10+50)/4 = 20; only the 50 crosses 1.5x of that.
	for _, cents := range []int64{1000, 1000, 1000, 5000} {
		store.SaveTransaction(ctx, core.Transaction{
			Owner: "alice", Type: core.Expense, Category: core.CategoryFood,
			Date: now, Amount: core.Money{Cents: cents},
		})
	}

	sweeper := NewSweeper(store, sink, DefaultSweepConfig())
	if err := sweeper.Sweep(ctx, now); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	if len(sink.sent) != 1 {
		t.Fatalf("got %d notifications, want 1: %v", len(sink.sent), sink.sent)
	}
	n := sink.sent[0]
	if n.Owner != "alice" || n.Subject != "Unusual Spending Alert" {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if !strings.Contains(n.Body, "FOOD") || !strings.Contains(n.Body, "50.00") {
		t.Fatalf("unexpected body: %q", n.Body)
	}
}

func TestSweepGoalDeadlines(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	sink := &recorderSink{}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	store.SaveGoal(ctx, core.Goal{
		Owner: "alice", Name: "due soon", Status: core.GoalInProgress,
		Target: core.CentsOf(10000), Saved: core.CentsOf(4000),
		End: now.Add(3 * 24 * time.Hour),
	})
	store.SaveGoal(ctx, core.Goal{
		Owner: "alice", Name: "far away", Status: core.GoalInProgress,
		Target: core.CentsOf(10000),
		End:    now.Add(30 * 24 * time.Hour),
	})
	store.SaveGoal(ctx, core.Goal{
		Owner: "alice", Name: "already done", Status: core.GoalCompleted,
		Target: core.CentsOf(10000), Saved: core.CentsOf(10000),
		End: now.Add(2 * 24 * time.Hour),
	})

	sweeper := NewSweeper(store, sink, DefaultSweepConfig())
	if err := sweeper.Sweep(ctx, now); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	if len(sink.sent) != 1 {
		t.Fatalf("got %d notifications, want 1: %v", len(sink.sent), sink.sent)
	}
	n := sink.sent[0]
	if n.Subject != "Upcoming Goal Deadline" || !strings.Contains(n.Body, "due soon") {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestSweepOverBudget(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	sink := &recorderSink{}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	store.SaveBudget(ctx, core.Budget{
		Owner: "alice", Category: "FOOD",
		Target: core.CentsOf(50000), Spent: core.CentsOf(55000),
	})
	store.SaveBudget(ctx, core.Budget{
		Owner: "alice", Category: "TRANSPORT",
		Target: core.CentsOf(50000), Spent: core.CentsOf(50000),
	})

	sweeper := NewSweeper(store, sink, DefaultSweepConfig())
	if err := sweeper.Sweep(ctx, now); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	if len(sink.sent) != 1 {
		t.Fatalf("got %d notifications, want 1: %v", len(sink.sent), sink.sent)
	}
	if got := sink.sent[0].Subject; got != "Budget Exceeded" {
		t.Fatalf("subject = %q, want Budget Exceeded", got)
	}
}

func TestSweepSinkFailureDoesNotFailSweep(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	sink := &recorderSink{failWith: errors.New("broker down")}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	store.SaveBudget(ctx, core.Budget{
		Owner: "alice", Category: "FOOD",
		Target: core.CentsOf(100), Spent: core.CentsOf(200),
	})

	sweeper := NewSweeper(store, sink, DefaultSweepConfig())
	if err := sweeper.Sweep(ctx, now); err != nil {
		t.Fatalf("Sweep: %v, sink failures must be swallowed", err)
	}
}

func TestSweepRunsAllChecks(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	sink := &recorderSink{}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	store.SaveBudget(ctx, core.Budget{
		Owner: "alice", Category: "FOOD",
		Target: core.CentsOf(100), Spent: core.CentsOf(200),
	})
	store.SaveGoal(ctx, core.Goal{
		Owner: "alice", Name: "due", Status: core.GoalInProgress,
		Target: core.CentsOf(10000), End: now.Add(24 * time.Hour),
	})

	sweeper := NewSweeper(store, sink, DefaultSweepConfig())
	if err := sweeper.Sweep(ctx, now); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	want := []string{"Budget Exceeded", "Upcoming Goal Deadline"}
	got := sink.subjects()
	if len(got) != len(want) {
		t.Fatalf("subjects = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("subjects = %v, want %v", got, want)
		}
	}
}
