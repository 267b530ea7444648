package services

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/ledger/memory"
)

func reportFixture(t *testing.T) (*memory.Store, *ReportService) {
	t.Helper()
	store := memory.New()
	return store, NewReportService(store, auth.NewGuard())
}

func seed(t *testing.T, store *memory.Store, tx core.Transaction) {
	t.Helper()
	if _, err := store.SaveTransaction(context.Background(), tx); err != nil {
		t.Fatalf("SaveTransaction: %v", err)
	}
}

func TestGenerateTotalsAndBreakdown(t *testing.T) {
	ctx := context.Background()
	store, reports := reportFixture(t)
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	seed(t, store, core.Transaction{Owner: "alice", Type: core.Income, Category: core.CategorySalary, Date: date, Amount: core.CentsOf(100000)})
	seed(t, store, core.Transaction{Owner: "alice", Type: core.Expense, Category: core.CategoryFood, Date: date, Amount: core.CentsOf(20000)})

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	r, err := reports.Generate(ctx, alice(), "alice", start, end, nil, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if r.TotalIncome.Cents != 100000 {
		t.Fatalf("TotalIncome = %d, want 100000", r.TotalIncome.Cents)
	}
	if r.TotalExpenses.Cents != 20000 {
		t.Fatalf("TotalExpenses = %d, want 20000", r.TotalExpenses.Cents)
	}
	if len(r.CategoryTotals) != 1 {
		t.Fatalf("CategoryTotals = %v, want only FOOD", r.CategoryTotals)
	}
	if got := r.CategoryTotals[core.CategoryFood].Cents; got != 20000 {
		t.Fatalf("FOOD total = %d, want 20000", got)
	}
	// No TRANSPORT entry: categories without expenses are absent, not zero.
	if _, ok := r.CategoryTotals[core.CategoryTransport]; ok {
		t.Fatal("TRANSPORT must be absent from the breakdown")
	}
}

func TestGenerateWindowIsInclusive(t *testing.T) {
	ctx := context.Background()
	store, reports := reportFixture(t)
	day := func(d int) time.Time { return time.Date(2025, 5, d, 0, 0, 0, 0, time.UTC) }

	seed(t, store, core.Transaction{Owner: "alice", Type: core.Expense, Category: core.CategoryFood, Date: day(1), Amount: core.CentsOf(100)})
	seed(t, store, core.Transaction{Owner: "alice", Type: core.Expense, Category: core.CategoryFood, Date: day(5), Amount: core.CentsOf(100)})
	seed(t, store, core.Transaction{Owner: "alice", Type: core.Expense, Category: core.CategoryFood, Date: day(6), Amount: core.CentsOf(100)})

	r, err := reports.Generate(ctx, alice(), "alice", day(1), day(5), nil, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if r.TotalExpenses.Cents != 200 {
		t.Fatalf("TotalExpenses = %d, want 200 (both endpoints included, day 6 excluded)", r.TotalExpenses.Cents)
	}
}

func TestGenerateCategoryFilter(t *testing.T) {
	ctx := context.Background()
	store, reports := reportFixture(t)
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	seed(t, store, core.Transaction{Owner: "alice", Type: core.Expense, Category: core.CategoryFood, Date: date, Amount: core.CentsOf(100)})
	seed(t, store, core.Transaction{Owner: "alice", Type: core.Expense, Category: core.CategoryTransport, Date: date, Amount: core.CentsOf(200)})
	// No category set: passes any category filter.
	seed(t, store, core.Transaction{Owner: "alice", Type: core.Expense, Date: date, Amount: core.CentsOf(400)})

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	r, err := reports.Generate(ctx, alice(), "alice", start, end, []core.Category{core.CategoryFood}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if r.TotalExpenses.Cents != 500 {
		t.Fatalf("TotalExpenses = %d, want 500 (FOOD 100 + uncategorized 400)", r.TotalExpenses.Cents)
	}
	if _, ok := r.CategoryTotals[core.CategoryTransport]; ok {
		t.Fatal("TRANSPORT filtered out but present in breakdown")
	}
}

func TestGenerateTagFilter(t *testing.T) {
	ctx := context.Background()
	store, reports := reportFixture(t)
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	seed(t, store, core.Transaction{Owner: "alice", Type: core.Expense, Category: core.CategoryFood, Date: date, Amount: core.CentsOf(100), Tags: []string{"work"}})
	seed(t, store, core.Transaction{Owner: "alice", Type: core.Expense, Category: core.CategoryFood, Date: date, Amount: core.CentsOf(200), Tags: []string{"personal"}})
	// No tags: passes any tag filter.
	seed(t, store, core.Transaction{Owner: "alice", Type: core.Expense, Category: core.CategoryFood, Date: date, Amount: core.CentsOf(400)})

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	r, err := reports.Generate(ctx, alice(), "alice", start, end, nil, []string{"work"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if r.TotalExpenses.Cents != 500 {
		t.Fatalf("TotalExpenses = %d, want 500 (tagged work 100 + untagged 400)", r.TotalExpenses.Cents)
	}
}

func TestGenerateRequiresOwner(t *testing.T) {
	ctx := context.Background()
	_, reports := reportFixture(t)

	_, err := reports.Generate(ctx, alice(), "  ", time.Time{}, time.Time{}, nil, nil)
	if !core.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestGenerateForeignOwnerDenied(t *testing.T) {
	ctx := context.Background()
	_, reports := reportFixture(t)

	_, err := reports.Generate(ctx, auth.Principal{UserID: "bob"}, "alice", time.Time{}, time.Now(), nil, nil)
	if !core.IsAuthorization(err) {
		t.Fatalf("err = %v, want authorization error", err)
	}
}
