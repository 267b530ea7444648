package core

import (
	"testing"
	"time"
)

func TestReportAccumulate(t *testing.T) {
	r := NewReport()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	r.Accumulate(Transaction{Type: Income, Category: CategorySalary, Date: date, Amount: CentsOf(100000)})
	r.Accumulate(Transaction{Type: Expense, Category: CategoryFood, Date: date, Amount: CentsOf(20000)})
	r.Accumulate(Transaction{Type: Expense, Category: CategoryTransport, Date: date, Amount: CentsOf(5000)})
	r.Accumulate(Transaction{Type: Expense, Category: CategoryFood, Date: date, Amount: CentsOf(3000)})

	if r.TotalIncome.Cents != 100000 {
		t.Fatalf("TotalIncome = %d, want 100000", r.TotalIncome.Cents)
	}
	if r.TotalExpenses.Cents != 28000 {
		t.Fatalf("TotalExpenses = %d, want 28000", r.TotalExpenses.Cents)
	}
	if got := r.CategoryTotals[CategoryFood].Cents; got != 23000 {
		t.Fatalf("FOOD total = %d, want 23000", got)
	}
	// Income categories never enter the breakdown.
	if _, ok := r.CategoryTotals[CategorySalary]; ok {
		t.Fatal("SALARY must not appear in expense breakdown")
	}
	// First-seen order is preserved for stable exports.
	want := []Category{CategoryFood, CategoryTransport}
	if len(r.CategoryOrder) != len(want) {
		t.Fatalf("CategoryOrder = %v, want %v", r.CategoryOrder, want)
	}
	for i := range want {
		if r.CategoryOrder[i] != want[i] {
			t.Fatalf("CategoryOrder = %v, want %v", r.CategoryOrder, want)
		}
	}
}
