// Package ledger defines the ports for durable keyed storage of transactions,
// budgets and goals. Implementations live in subpackages (sqlite, memory).
package ledger

import (
	"context"
	"time"

	"fintrack/internal/core"
)

// Ports for the persistence adapters. Lookups by ID return a
// *core.NotFoundError when the identity is absent. List methods return
// records ordered by ascending ID, which is what makes "first match" a
// deterministic contract for budget selection.
type (
	TransactionStore interface {
		// SaveTransaction inserts when ID is zero and overwrites otherwise,
		// returning the stored record with its assigned identity.
		SaveTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		TransactionByID(ctx context.Context, id int64) (core.Transaction, error)
		AllTransactions(ctx context.Context) ([]core.Transaction, error)
		TransactionsByOwner(ctx context.Context, owner string) ([]core.Transaction, error)
		TransactionsByOwnerAndCategory(ctx context.Context, owner string, category core.Category) ([]core.Transaction, error)
		// TransactionsInWindow returns the owner's transactions with a date
		// inside [start, end], both ends inclusive.
		TransactionsInWindow(ctx context.Context, owner string, start, end time.Time) ([]core.Transaction, error)
		TransactionExists(ctx context.Context, id int64) (bool, error)
		DeleteTransaction(ctx context.Context, id int64) error
	}

	BudgetStore interface {
		SaveBudget(ctx context.Context, b core.Budget) (core.Budget, error)
		BudgetByID(ctx context.Context, id int64) (core.Budget, error)
		AllBudgets(ctx context.Context) ([]core.Budget, error)
		BudgetsByOwner(ctx context.Context, owner string) ([]core.Budget, error)
		DeleteBudget(ctx context.Context, id int64) error
	}

	GoalStore interface {
		SaveGoal(ctx context.Context, g core.Goal) (core.Goal, error)
		GoalByID(ctx context.Context, id int64) (core.Goal, error)
		AllGoals(ctx context.Context) ([]core.Goal, error)
		GoalsByOwner(ctx context.Context, owner string) ([]core.Goal, error)
		DeleteGoal(ctx context.Context, id int64) error
	}

	// Store is the composite ledger consumed by the services.
	Store interface {
		TransactionStore
		BudgetStore
		GoalStore
	}
)
