// Package memory provides an in-process ledger store. It backs local runs
// without a database and serves as the test double for the services.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"fintrack/internal/core"
)

type Store struct {
	mu           sync.Mutex
	nextID       int64
	transactions map[int64]core.Transaction
	budgets      map[int64]core.Budget
	goals        map[int64]core.Goal
}

func New() *Store {
	return &Store{
		nextID:       1,
		transactions: make(map[int64]core.Transaction),
		budgets:      make(map[int64]core.Budget),
		goals:        make(map[int64]core.Goal),
	}
}

func (s *Store) assignID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) SaveTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		t.ID = s.assignID()
	}
	s.transactions[t.ID] = cloneTransaction(t)
	return t, nil
}

func (s *Store) TransactionByID(_ context.Context, id int64) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return core.Transaction{}, &core.NotFoundError{Entity: "Transaction", ID: id}
	}
	return cloneTransaction(t), nil
}

func (s *Store) AllTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, cloneTransaction(t))
	}
	sortTransactions(out)
	return out, nil
}

func (s *Store) TransactionsByOwner(_ context.Context, owner string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.transactions {
		if t.Owner == owner {
			out = append(out, cloneTransaction(t))
		}
	}
	sortTransactions(out)
	return out, nil
}

func (s *Store) TransactionsByOwnerAndCategory(_ context.Context, owner string, category core.Category) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.transactions {
		if t.Owner == owner && t.Category == category {
			out = append(out, cloneTransaction(t))
		}
	}
	sortTransactions(out)
	return out, nil
}

func (s *Store) TransactionsInWindow(_ context.Context, owner string, start, end time.Time) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.transactions {
		if t.Owner != owner {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		out = append(out, cloneTransaction(t))
	}
	sortTransactions(out)
	return out, nil
}

func (s *Store) TransactionExists(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.transactions[id]
	return ok, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.transactions, id)
	return nil
}

func (s *Store) SaveBudget(_ context.Context, b core.Budget) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.assignID()
	}
	s.budgets[b.ID] = b
	return b, nil
}

func (s *Store) BudgetByID(_ context.Context, id int64) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok {
		return core.Budget{}, &core.NotFoundError{Entity: "Budget", ID: id}
	}
	return b, nil
}

func (s *Store) AllBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) BudgetsByOwner(_ context.Context, owner string) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Budget
	for _, b := range s.budgets {
		if b.Owner == owner {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) DeleteBudget(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.budgets, id)
	return nil
}

func (s *Store) SaveGoal(_ context.Context, g core.Goal) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == 0 {
		g.ID = s.assignID()
	}
	s.goals[g.ID] = g
	return g, nil
}

func (s *Store) GoalByID(_ context.Context, id int64) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[id]
	if !ok {
		return core.Goal{}, &core.NotFoundError{Entity: "Goal", ID: id}
	}
	return g, nil
}

func (s *Store) AllGoals(_ context.Context) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GoalsByOwner(_ context.Context, owner string) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Goal
	for _, g := range s.goals {
		if g.Owner == owner {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) DeleteGoal(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.goals, id)
	return nil
}

func sortTransactions(ts []core.Transaction) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].ID < ts[j].ID })
}

func cloneTransaction(t core.Transaction) core.Transaction {
	if t.Tags != nil {
		t.Tags = append([]string(nil), t.Tags...)
	}
	return t
}
