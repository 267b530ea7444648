package services

import (
	"context"
	"log/slog"
	"strings"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// BudgetService owns per-category spend tracking. Budget.Spent is a running
// counter: it only moves through expense propagation, CheckExceed, or a
// direct CreateOrUpdate overwrite.
type BudgetService struct {
	store ledger.BudgetStore
	guard auth.Guard
}

func NewBudgetService(store ledger.BudgetStore, guard auth.Guard) *BudgetService {
	return &BudgetService{store: store, guard: guard}
}

// CreateOrUpdate saves a budget. The zero value of Spent already is the
// documented "defaults to zero" behavior for newly created budgets; a caller
// supplying a spent total overwrites the counter (administrative update).
func (s *BudgetService) CreateOrUpdate(ctx context.Context, p auth.Principal, b core.Budget) (core.Budget, error) {
	if strings.TrimSpace(b.Owner) == "" {
		return core.Budget{}, &core.ValidationError{Reason: "owner is required"}
	}
	if strings.TrimSpace(b.Category) == "" {
		return core.Budget{}, &core.ValidationError{Reason: "budget category is required"}
	}
	if b.Target.Cents < 0 {
		return core.Budget{}, &core.ValidationError{Reason: "budget target amount must not be negative"}
	}
	if b.Spent.Cents < 0 {
		return core.Budget{}, &core.ValidationError{Reason: "budget spent amount must not be negative"}
	}
	if err := s.guard.Authorize(p, b.Owner); err != nil {
		return core.Budget{}, err
	}

	saved, err := s.store.SaveBudget(ctx, b)
	if err != nil {
		return core.Budget{}, &core.StorageError{Op: "save budget", Err: err}
	}
	return saved, nil
}

// Get returns a single budget by identity.
func (s *BudgetService) Get(ctx context.Context, p auth.Principal, id int64) (core.Budget, error) {
	b, err := s.store.BudgetByID(ctx, id)
	if err != nil {
		return core.Budget{}, err
	}
	if err := s.guard.Authorize(p, b.Owner); err != nil {
		return core.Budget{}, err
	}
	return b, nil
}

// ListByOwner returns all budgets belonging to the owner, lowest ID first.
func (s *BudgetService) ListByOwner(ctx context.Context, p auth.Principal, owner string) ([]core.Budget, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, &core.ValidationError{Reason: "owner is required"}
	}
	if err := s.guard.Authorize(p, owner); err != nil {
		return nil, err
	}
	bs, err := s.store.BudgetsByOwner(ctx, owner)
	if err != nil {
		return nil, &core.StorageError{Op: "list budgets", Err: err}
	}
	return bs, nil
}

// All returns every budget. Admin only.
func (s *BudgetService) All(ctx context.Context, p auth.Principal) ([]core.Budget, error) {
	if !p.IsAdmin() {
		return nil, &core.AuthorizationError{Principal: p.UserID, Owner: "*"}
	}
	bs, err := s.store.AllBudgets(ctx)
	if err != nil {
		return nil, &core.StorageError{Op: "list all budgets", Err: err}
	}
	return bs, nil
}

// Delete removes a budget by identity.
func (s *BudgetService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	b, err := s.store.BudgetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(p, b.Owner); err != nil {
		return err
	}
	if err := s.store.DeleteBudget(ctx, id); err != nil {
		return &core.StorageError{Op: "delete budget", Err: err}
	}
	return nil
}

// PropagateExpense adds the expense amount to the spent total of the first
// budget whose category label string-equals the transaction category.
// Comparison is case sensitive and first match wins (lowest ID) when several
// budgets share a category. No matching budget is a no-op: the expense stays
// in the ledger untracked.
func (s *BudgetService) PropagateExpense(ctx context.Context, t core.Transaction) error {
	budgets, err := s.store.BudgetsByOwner(ctx, t.Owner)
	if err != nil {
		return &core.StorageError{Op: "load budgets for propagation", Err: err}
	}

	for _, b := range budgets {
		if b.Category != string(t.Category) {
			continue
		}
		b.Spent = b.Spent.Add(t.Amount)
		if _, err := s.store.SaveBudget(ctx, b); err != nil {
			return &core.StorageError{Op: "save propagated budget", Err: err}
		}
		slog.InfoContext(ctx, "Budget spent total updated",
			"budget_id", b.ID,
			"owner", b.Owner,
			"category", b.Category,
			"spent", b.Spent)
		return nil
	}

	slog.DebugContext(ctx, "No budget matches expense category",
		"owner", t.Owner, "category", t.Category)
	return nil
}

// CheckExceed adds the pending expense amount to the budget's spent total,
// persists the new total, and reports whether spending now exceeds the
// target. The check commits: this is not a dry run.
func (s *BudgetService) CheckExceed(ctx context.Context, p auth.Principal, budgetID int64, amount core.Money) (bool, error) {
	b, err := s.store.BudgetByID(ctx, budgetID)
	if err != nil {
		return false, err
	}
	if err := s.guard.Authorize(p, b.Owner); err != nil {
		return false, err
	}

	b.Spent = b.Spent.Add(amount)
	if _, err := s.store.SaveBudget(ctx, b); err != nil {
		return false, &core.StorageError{Op: "save checked budget", Err: err}
	}
	return b.Exceeded(), nil
}
