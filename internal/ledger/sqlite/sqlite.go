// Package sqlite implements the ledger ports on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const transactionColumns = `id, owner, tx_type, category, tx_date, amount_cents, description, tags, recurring, recurrence_pattern, created_at, updated_at`

func (s *Store) SaveTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	tags, err := encodeTags(t.Tags)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("encode tags: %w", err)
	}

	if t.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO transactions (owner, tx_type, category, tx_date, amount_cents, description, tags, recurring, recurrence_pattern, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.Owner, string(t.Type), string(t.Category), t.Date, t.Amount.Cents,
			t.Description, tags, t.Recurring, string(t.Pattern), t.CreatedAt, t.UpdatedAt)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return core.Transaction{}, fmt.Errorf("transaction insert id: %w", err)
		}
		t.ID = id
		return t, nil
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE transactions SET owner = ?, tx_type = ?, category = ?, tx_date = ?, amount_cents = ?, description = ?, tags = ?, recurring = ?, recurrence_pattern = ?, updated_at = ?
		 WHERE id = ?`,
		t.Owner, string(t.Type), string(t.Category), t.Date, t.Amount.Cents,
		t.Description, tags, t.Recurring, string(t.Pattern), t.UpdatedAt, t.ID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	return t, nil
}

func (s *Store) TransactionByID(ctx context.Context, id int64) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, &core.NotFoundError{Entity: "Transaction", ID: id}
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction by id: %w", err)
	}
	return t, nil
}

func (s *Store) AllTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY id`)
}

func (s *Store) TransactionsByOwner(ctx context.Context, owner string) ([]core.Transaction, error) {
	return s.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE owner = ? ORDER BY id`, owner)
}

func (s *Store) TransactionsByOwnerAndCategory(ctx context.Context, owner string, category core.Category) ([]core.Transaction, error) {
	return s.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE owner = ? AND category = ? ORDER BY id`,
		owner, string(category))
}

func (s *Store) TransactionsInWindow(ctx context.Context, owner string, start, end time.Time) ([]core.Transaction, error) {
	return s.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE owner = ? AND tx_date >= ? AND tx_date <= ? ORDER BY id`,
		owner, start, end)
}

func (s *Store) TransactionExists(ctx context.Context, id int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM transactions WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("transaction exists: %w", err)
	}
	return n > 0, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t       core.Transaction
		txType  string
		cat     string
		pattern string
		tags    string
		cents   int64
	)
	err := row.Scan(&t.ID, &t.Owner, &txType, &cat, &t.Date, &cents,
		&t.Description, &tags, &t.Recurring, &pattern, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Type = core.TransactionType(txType)
	t.Category = core.Category(cat)
	t.Pattern = core.RecurrencePattern(pattern)
	t.Amount = core.CentsOf(cents)
	decoded, err := decodeTags(tags)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("decode tags: %w", err)
	}
	t.Tags = decoded
	return t, nil
}

func (s *Store) SaveBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if b.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO budgets (owner, category, target_cents, spent_cents, start_date, end_date)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			b.Owner, b.Category, b.Target.Cents, b.Spent.Cents, b.Start, b.End)
		if err != nil {
			return core.Budget{}, fmt.Errorf("insert budget: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return core.Budget{}, fmt.Errorf("budget insert id: %w", err)
		}
		b.ID = id
		return b, nil
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE budgets SET owner = ?, category = ?, target_cents = ?, spent_cents = ?, start_date = ?, end_date = ? WHERE id = ?`,
		b.Owner, b.Category, b.Target.Cents, b.Spent.Cents, b.Start, b.End, b.ID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	return b, nil
}

func (s *Store) BudgetByID(ctx context.Context, id int64) (core.Budget, error) {
	var (
		b             core.Budget
		target, spent int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner, category, target_cents, spent_cents, start_date, end_date FROM budgets WHERE id = ?`, id).
		Scan(&b.ID, &b.Owner, &b.Category, &target, &spent, &b.Start, &b.End)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, &core.NotFoundError{Entity: "Budget", ID: id}
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget by id: %w", err)
	}
	b.Target = core.CentsOf(target)
	b.Spent = core.CentsOf(spent)
	return b, nil
}

func (s *Store) AllBudgets(ctx context.Context) ([]core.Budget, error) {
	return s.queryBudgets(ctx,
		`SELECT id, owner, category, target_cents, spent_cents, start_date, end_date FROM budgets ORDER BY id`)
}

func (s *Store) BudgetsByOwner(ctx context.Context, owner string) ([]core.Budget, error) {
	return s.queryBudgets(ctx,
		`SELECT id, owner, category, target_cents, spent_cents, start_date, end_date FROM budgets WHERE owner = ? ORDER BY id`,
		owner)
}

func (s *Store) DeleteBudget(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

func (s *Store) queryBudgets(ctx context.Context, query string, args ...any) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var (
			b             core.Budget
			target, spent int64
		)
		if err := rows.Scan(&b.ID, &b.Owner, &b.Category, &target, &spent, &b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.Target = core.CentsOf(target)
		b.Spent = core.CentsOf(spent)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return out, nil
}

func (s *Store) SaveGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if g.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO goals (owner, name, status, target_cents, saved_cents, start_date, end_date)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			g.Owner, g.Name, string(g.Status), g.Target.Cents, g.Saved.Cents, g.Start, g.End)
		if err != nil {
			return core.Goal{}, fmt.Errorf("insert goal: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return core.Goal{}, fmt.Errorf("goal insert id: %w", err)
		}
		g.ID = id
		return g, nil
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE goals SET owner = ?, name = ?, status = ?, target_cents = ?, saved_cents = ?, start_date = ?, end_date = ? WHERE id = ?`,
		g.Owner, g.Name, string(g.Status), g.Target.Cents, g.Saved.Cents, g.Start, g.End, g.ID)
	if err != nil {
		return core.Goal{}, fmt.Errorf("update goal: %w", err)
	}
	return g, nil
}

func (s *Store) GoalByID(ctx context.Context, id int64) (core.Goal, error) {
	var (
		g             core.Goal
		status        string
		target, saved int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner, name, status, target_cents, saved_cents, start_date, end_date FROM goals WHERE id = ?`, id).
		Scan(&g.ID, &g.Owner, &g.Name, &status, &target, &saved, &g.Start, &g.End)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, &core.NotFoundError{Entity: "Goal", ID: id}
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal by id: %w", err)
	}
	g.Status = core.GoalStatus(status)
	g.Target = core.CentsOf(target)
	g.Saved = core.CentsOf(saved)
	return g, nil
}

func (s *Store) AllGoals(ctx context.Context) ([]core.Goal, error) {
	return s.queryGoals(ctx,
		`SELECT id, owner, name, status, target_cents, saved_cents, start_date, end_date FROM goals ORDER BY id`)
}

func (s *Store) GoalsByOwner(ctx context.Context, owner string) ([]core.Goal, error) {
	return s.queryGoals(ctx,
		`SELECT id, owner, name, status, target_cents, saved_cents, start_date, end_date FROM goals WHERE owner = ? ORDER BY id`,
		owner)
}

func (s *Store) DeleteGoal(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

func (s *Store) queryGoals(ctx context.Context, query string, args ...any) ([]core.Goal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var (
			g             core.Goal
			status        string
			target, saved int64
		)
		if err := rows.Scan(&g.ID, &g.Owner, &g.Name, &status, &target, &saved, &g.Start, &g.End); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.Status = core.GoalStatus(status)
		g.Target = core.CentsOf(target)
		g.Saved = core.CentsOf(saved)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return out, nil
}

func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeTags(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
