package services

import (
	"context"
	"testing"

	"fintrack/internal/core"
)

func TestGoalCreateForcesFreshState(t *testing.T) {
	ctx := context.Background()
	_, _, _, goals := newFixture()

	g, err := goals.Create(ctx, alice(), core.Goal{
		Owner:  "alice",
		Name:   "car",
		Target: core.CentsOf(1000000),
		Saved:  core.CentsOf(999999),
		Status: core.GoalCompleted,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !g.Saved.IsZero() {
		t.Fatalf("saved = %s, want 0.00", g.Saved.Format())
	}
	if g.Status != core.GoalNotStarted {
		t.Fatalf("status = %s, want NOT_STARTED", g.Status)
	}
}

func TestGoalCreateValidation(t *testing.T) {
	ctx := context.Background()
	_, _, _, goals := newFixture()

	if _, err := goals.Create(ctx, alice(), core.Goal{Owner: "alice", Target: core.CentsOf(100)}); !core.IsValidation(err) {
		t.Fatalf("nameless goal err = %v, want validation error", err)
	}
	if _, err := goals.Create(ctx, alice(), core.Goal{Name: "car", Target: core.CentsOf(100)}); !core.IsValidation(err) {
		t.Fatalf("ownerless goal err = %v, want validation error", err)
	}
}

func TestAddMoneyTransitionsStatus(t *testing.T) {
	ctx := context.Background()
	_, _, _, goals := newFixture()

	g, _ := goals.Create(ctx, alice(), core.Goal{Owner: "alice", Name: "car", Target: core.CentsOf(1000000)})

	g, err := goals.AddMoney(ctx, alice(), g.ID, core.CentsOf(200000))
	if err != nil {
		t.Fatalf("AddMoney: %v", err)
	}
	if g.Status != core.GoalInProgress {
		t.Fatalf("status = %s, want IN_PROGRESS", g.Status)
	}

	g, err = goals.AddMoney(ctx, alice(), g.ID, core.CentsOf(1000000))
	if err != nil {
		t.Fatalf("AddMoney: %v", err)
	}
	if g.Status != core.GoalCompleted {
		t.Fatalf("status = %s, want COMPLETED", g.Status)
	}
	if g.Saved.Cents != 1200000 {
		t.Fatalf("saved = %d, want 1200000", g.Saved.Cents)
	}

	// Dropping back below target does not leave COMPLETED.
	g, err = goals.AddMoney(ctx, alice(), g.ID, core.Money{Cents: -500000})
	if err != nil {
		t.Fatalf("AddMoney: %v", err)
	}
	if g.Status != core.GoalCompleted {
		t.Fatalf("status = %s after correction, want COMPLETED retained", g.Status)
	}
}

func TestCompletionPercentage(t *testing.T) {
	ctx := context.Background()
	_, _, _, goals := newFixture()

	cases := []struct {
		name  string
		saved int64
		want  string
	}{
		{"partial", 200000, "20% (Remaining: 8000.00)"},
		{"floors fraction", 199999, "19% (Remaining: 8000.01)"},
		{"exactly complete", 1000000, "100% (Extra saved: 0.00)"},
		{"over target", 1200000, "100% (Extra saved: 2000.00)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, _ := goals.Create(ctx, alice(), core.Goal{Owner: "alice", Name: "car", Target: core.CentsOf(1000000)})
			if c.saved != 0 {
				if _, err := goals.AddMoney(ctx, alice(), g.ID, core.Money{Cents: c.saved}); err != nil {
					t.Fatalf("AddMoney: %v", err)
				}
			}
			got, err := goals.CompletionPercentage(ctx, alice(), g.ID)
			if err != nil {
				t.Fatalf("CompletionPercentage: %v", err)
			}
			if got != c.want {
				t.Fatalf("CompletionPercentage = %q, want %q", got, c.want)
			}
		})
	}
}

func TestCompletionPercentageZeroTarget(t *testing.T) {
	ctx := context.Background()
	_, _, _, goals := newFixture()

	g, _ := goals.Create(ctx, alice(), core.Goal{Owner: "alice", Name: "nothing"})
	got, err := goals.CompletionPercentage(ctx, alice(), g.ID)
	if err != nil {
		t.Fatalf("CompletionPercentage: %v", err)
	}
	if got != "100% (Extra saved: 0.00)" {
		t.Fatalf("CompletionPercentage = %q, want zero target complete", got)
	}
}

func TestGoalUpdateOverwritesStatus(t *testing.T) {
	ctx := context.Background()
	_, _, _, goals := newFixture()

	g, _ := goals.Create(ctx, alice(), core.Goal{Owner: "alice", Name: "car", Target: core.CentsOf(1000)})
	updated, err := goals.Update(ctx, alice(), g.ID, core.Goal{
		Owner:  "bob", // ignored, owner stays as stored
		Name:   "bigger car",
		Target: core.CentsOf(2000),
		Saved:  core.CentsOf(500),
		Status: core.GoalInProgress,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Owner != "alice" {
		t.Fatalf("owner = %q, want alice", updated.Owner)
	}
	if updated.Name != "bigger car" || updated.Saved.Cents != 500 || updated.Status != core.GoalInProgress {
		t.Fatalf("unexpected goal after update: %+v", updated)
	}
}
