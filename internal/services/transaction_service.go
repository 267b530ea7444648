// Package services implements the transaction-driven derived-state engine:
// the coordinator that validates and persists transactions and propagates
// their effects into budget and goal running counters, the trackers that own
// those counters, the report engine, and the notifier sweep comparisons.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// PropagationWarning records a non-fatal bookkeeping failure that happened
// after a transaction was persisted. The transaction write itself succeeded;
// only the budget/goal counter adjustment did not.
type PropagationWarning struct {
	Target string // "budget" or "goal"
	Err    error
}

func (w PropagationWarning) String() string {
	return fmt.Sprintf("%s propagation: %v", w.Target, w.Err)
}

// TransactionService coordinates the transaction lifecycle. Creation is the
// single propagation point: expenses feed the matching budget's spent total,
// income feeds every goal of the owner. Updates and deletes never touch the
// counters; the spent/saved totals are running counters, not recomputed
// aggregates.
type TransactionService struct {
	store   ledger.Store
	budgets *BudgetService
	goals   *GoalService
	guard   auth.Guard
	now     func() time.Time
}

func NewTransactionService(store ledger.Store, budgets *BudgetService, goals *GoalService, guard auth.Guard) *TransactionService {
	return &TransactionService{
		store:   store,
		budgets: budgets,
		goals:   goals,
		guard:   guard,
		now:     time.Now,
	}
}

// Create validates and persists a new transaction, then propagates its effect
// into the owner's budgets (expenses) or goals (income). Propagation problems
// never fail the create: they come back as warnings next to the persisted
// record.
func (s *TransactionService) Create(ctx context.Context, p auth.Principal, t core.Transaction) (core.Transaction, []PropagationWarning, error) {
	if err := s.guard.Authorize(p, t.Owner); err != nil {
		return core.Transaction{}, nil, err
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, nil, err
	}

	now := s.now()
	t.ID = 0
	t.CreatedAt = now
	t.UpdatedAt = now

	created, err := s.store.SaveTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, nil, &core.StorageError{Op: "save transaction", Err: err}
	}

	slog.InfoContext(ctx, "Transaction created",
		"id", created.ID,
		"owner", created.Owner,
		"type", created.Type,
		"category", created.Category,
		"amount", created.Amount)

	var warnings []PropagationWarning
	switch created.Type {
	case core.Expense:
		if err := s.budgets.PropagateExpense(ctx, created); err != nil {
			warnings = append(warnings, PropagationWarning{Target: "budget", Err: err})
		}
	case core.Income:
		if err := s.goals.PropagateIncome(ctx, created); err != nil {
			warnings = append(warnings, PropagationWarning{Target: "goal", Err: err})
		}
	}
	for _, w := range warnings {
		slog.WarnContext(ctx, "Propagation failed after transaction create",
			"id", created.ID, "target", w.Target, "error", w.Err)
	}

	return created, warnings, nil
}

// Update replaces the mutable fields of an existing transaction. The stored
// owner is authoritative: a caller-supplied owner change is rejected outright.
// Budgets and goals are not re-propagated; propagation is create-time only.
func (s *TransactionService) Update(ctx context.Context, p auth.Principal, id int64, updated core.Transaction) (core.Transaction, error) {
	if err := updated.Validate(); err != nil {
		return core.Transaction{}, err
	}

	existing, err := s.store.TransactionByID(ctx, id)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := s.guard.Authorize(p, existing.Owner); err != nil {
		return core.Transaction{}, err
	}
	if updated.Owner != existing.Owner {
		return core.Transaction{}, &core.AuthorizationError{Principal: p.UserID, Owner: existing.Owner}
	}

	existing.Type = updated.Type
	existing.Category = updated.Category
	existing.Date = updated.Date
	existing.Amount = updated.Amount
	existing.Description = updated.Description
	existing.Tags = updated.Tags
	existing.Recurring = updated.Recurring
	existing.Pattern = updated.Pattern
	existing.UpdatedAt = s.now()

	saved, err := s.store.SaveTransaction(ctx, existing)
	if err != nil {
		return core.Transaction{}, &core.StorageError{Op: "update transaction", Err: err}
	}

	slog.InfoContext(ctx, "Transaction updated", "id", saved.ID, "owner", saved.Owner)
	return saved, nil
}

// Delete removes a transaction by identity. Previously propagated budget and
// goal totals are left untouched.
func (s *TransactionService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	existing, err := s.store.TransactionByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(p, existing.Owner); err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return &core.StorageError{Op: "delete transaction", Err: err}
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id, "owner", existing.Owner)
	return nil
}

// Get returns a single transaction by identity.
func (s *TransactionService) Get(ctx context.Context, p auth.Principal, id int64) (core.Transaction, error) {
	t, err := s.store.TransactionByID(ctx, id)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := s.guard.Authorize(p, t.Owner); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// ListByOwner returns all transactions belonging to the owner.
func (s *TransactionService) ListByOwner(ctx context.Context, p auth.Principal, owner string) ([]core.Transaction, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, &core.ValidationError{Reason: "owner is required"}
	}
	if err := s.guard.Authorize(p, owner); err != nil {
		return nil, err
	}
	ts, err := s.store.TransactionsByOwner(ctx, owner)
	if err != nil {
		return nil, &core.StorageError{Op: "list transactions", Err: err}
	}
	return ts, nil
}

// ListByOwnerAndCategory returns the owner's transactions in one category.
func (s *TransactionService) ListByOwnerAndCategory(ctx context.Context, p auth.Principal, owner string, category core.Category) ([]core.Transaction, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, &core.ValidationError{Reason: "owner is required"}
	}
	if category == "" {
		return nil, &core.ValidationError{Reason: "category is required"}
	}
	if err := s.guard.Authorize(p, owner); err != nil {
		return nil, err
	}
	ts, err := s.store.TransactionsByOwnerAndCategory(ctx, owner, category)
	if err != nil {
		return nil, &core.StorageError{Op: "list transactions by category", Err: err}
	}
	return ts, nil
}

// All returns every transaction in the ledger. Admin only.
func (s *TransactionService) All(ctx context.Context, p auth.Principal) ([]core.Transaction, error) {
	if !p.IsAdmin() {
		return nil, &core.AuthorizationError{Principal: p.UserID, Owner: "*"}
	}
	ts, err := s.store.AllTransactions(ctx)
	if err != nil {
		return nil, &core.StorageError{Op: "list all transactions", Err: err}
	}
	return ts, nil
}
