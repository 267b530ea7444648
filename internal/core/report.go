package core

// Report is a derived aggregate over a slice of the ledger. It is computed on
// demand and never persisted.
type Report struct {
	TotalIncome   Money
	TotalExpenses Money
	// CategoryTotals maps each category with at least one expense to the sum
	// of its expense amounts. Categories without expenses are absent.
	CategoryTotals map[Category]Money
	// CategoryOrder holds the categories in first-seen grouping order so that
	// exports stay stable across runs.
	CategoryOrder []Category
}

// NewReport returns an empty report ready for accumulation.
func NewReport() *Report {
	return &Report{CategoryTotals: make(map[Category]Money)}
}

// Accumulate folds one transaction into the running totals. Expense amounts
// additionally land in the per-category breakdown.
func (r *Report) Accumulate(t Transaction) {
	switch t.Type {
	case Income:
		r.TotalIncome = r.TotalIncome.Add(t.Amount)
	case Expense:
		r.TotalExpenses = r.TotalExpenses.Add(t.Amount)
		if _, seen := r.CategoryTotals[t.Category]; !seen {
			r.CategoryOrder = append(r.CategoryOrder, t.Category)
		}
		r.CategoryTotals[t.Category] = r.CategoryTotals[t.Category].Add(t.Amount)
	}
}
