package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// GoalService owns savings goals and their lifecycle. Every change to the
// saved total re-evaluates the status: COMPLETED once saved reaches the
// target, IN_PROGRESS otherwise. There is no automatic transition out of
// COMPLETED when a later correction drops saved below target again; only a
// full Update can overwrite the status directly.
type GoalService struct {
	store ledger.GoalStore
	guard auth.Guard
}

func NewGoalService(store ledger.GoalStore, guard auth.Guard) *GoalService {
	return &GoalService{store: store, guard: guard}
}

// Create saves a new goal. Caller-supplied saved amount and status are
// discarded: every goal starts NOT_STARTED with nothing saved.
func (s *GoalService) Create(ctx context.Context, p auth.Principal, g core.Goal) (core.Goal, error) {
	if strings.TrimSpace(g.Owner) == "" {
		return core.Goal{}, &core.ValidationError{Reason: "owner is required"}
	}
	if strings.TrimSpace(g.Name) == "" {
		return core.Goal{}, &core.ValidationError{Reason: "goal name is required"}
	}
	if g.Target.Cents < 0 {
		return core.Goal{}, &core.ValidationError{Reason: "goal target amount must not be negative"}
	}
	if err := s.guard.Authorize(p, g.Owner); err != nil {
		return core.Goal{}, err
	}

	g.ID = 0
	g.Saved = core.Money{}
	g.Status = core.GoalNotStarted

	saved, err := s.store.SaveGoal(ctx, g)
	if err != nil {
		return core.Goal{}, &core.StorageError{Op: "save goal", Err: err}
	}
	return saved, nil
}

// Update replaces every mutable field of the goal, including status and the
// saved counter (administrative update). The owner stays as stored.
func (s *GoalService) Update(ctx context.Context, p auth.Principal, id int64, updated core.Goal) (core.Goal, error) {
	g, err := s.store.GoalByID(ctx, id)
	if err != nil {
		return core.Goal{}, err
	}
	if err := s.guard.Authorize(p, g.Owner); err != nil {
		return core.Goal{}, err
	}

	g.Name = updated.Name
	g.Status = updated.Status
	g.Target = updated.Target
	g.Saved = updated.Saved
	g.Start = updated.Start
	g.End = updated.End

	saved, err := s.store.SaveGoal(ctx, g)
	if err != nil {
		return core.Goal{}, &core.StorageError{Op: "update goal", Err: err}
	}
	return saved, nil
}

// AddMoney adjusts the saved total by delta (negative deltas are allowed for
// corrections) and re-evaluates the goal status.
func (s *GoalService) AddMoney(ctx context.Context, p auth.Principal, id int64, delta core.Money) (core.Goal, error) {
	g, err := s.store.GoalByID(ctx, id)
	if err != nil {
		return core.Goal{}, err
	}
	if err := s.guard.Authorize(p, g.Owner); err != nil {
		return core.Goal{}, err
	}

	g.Saved = g.Saved.Add(delta)
	g.Status = g.StatusForSaved()

	saved, err := s.store.SaveGoal(ctx, g)
	if err != nil {
		return core.Goal{}, &core.StorageError{Op: "save goal after add", Err: err}
	}

	slog.InfoContext(ctx, "Goal saved total updated",
		"goal_id", saved.ID,
		"owner", saved.Owner,
		"saved", saved.Saved,
		"status", saved.Status)
	return saved, nil
}

// CompletionPercentage renders the goal's progress. At or past the target the
// result is "100% (Extra saved: X.XX)"; below target it is
// "N% (Remaining: X.XX)" with N floored. A zero target counts as complete.
func (s *GoalService) CompletionPercentage(ctx context.Context, p auth.Principal, id int64) (string, error) {
	g, err := s.store.GoalByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.guard.Authorize(p, g.Owner); err != nil {
		return "", err
	}

	if g.Saved.Cents >= g.Target.Cents {
		return fmt.Sprintf("100%% (Extra saved: %s)", g.Saved.Sub(g.Target).Format()), nil
	}
	pct := g.Saved.Cents * 100 / g.Target.Cents
	return fmt.Sprintf("%d%% (Remaining: %s)", pct, g.Target.Sub(g.Saved).Format()), nil
}

// PropagateIncome adds the income amount to the saved total of every goal of
// the transaction's owner and re-evaluates each status. A failing goal save
// does not stop the remaining goals; all failures are joined into one error.
func (s *GoalService) PropagateIncome(ctx context.Context, t core.Transaction) error {
	goals, err := s.store.GoalsByOwner(ctx, t.Owner)
	if err != nil {
		return &core.StorageError{Op: "load goals for propagation", Err: err}
	}

	var errs []error
	for _, g := range goals {
		g.Saved = g.Saved.Add(t.Amount)
		g.Status = g.StatusForSaved()
		if _, err := s.store.SaveGoal(ctx, g); err != nil {
			errs = append(errs, fmt.Errorf("goal %d: %w", g.ID, err))
			continue
		}
		slog.InfoContext(ctx, "Goal saved total updated from income",
			"goal_id", g.ID,
			"owner", g.Owner,
			"saved", g.Saved,
			"status", g.Status)
	}
	return errors.Join(errs...)
}

// Get returns a single goal by identity.
func (s *GoalService) Get(ctx context.Context, p auth.Principal, id int64) (core.Goal, error) {
	g, err := s.store.GoalByID(ctx, id)
	if err != nil {
		return core.Goal{}, err
	}
	if err := s.guard.Authorize(p, g.Owner); err != nil {
		return core.Goal{}, err
	}
	return g, nil
}

// ListByOwner returns all goals belonging to the owner.
func (s *GoalService) ListByOwner(ctx context.Context, p auth.Principal, owner string) ([]core.Goal, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, &core.ValidationError{Reason: "owner is required"}
	}
	if err := s.guard.Authorize(p, owner); err != nil {
		return nil, err
	}
	gs, err := s.store.GoalsByOwner(ctx, owner)
	if err != nil {
		return nil, &core.StorageError{Op: "list goals", Err: err}
	}
	return gs, nil
}

// All returns every goal. Admin only.
func (s *GoalService) All(ctx context.Context, p auth.Principal) ([]core.Goal, error) {
	if !p.IsAdmin() {
		return nil, &core.AuthorizationError{Principal: p.UserID, Owner: "*"}
	}
	gs, err := s.store.AllGoals(ctx)
	if err != nil {
		return nil, &core.StorageError{Op: "list all goals", Err: err}
	}
	return gs, nil
}

// Delete removes a goal by identity.
func (s *GoalService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	g, err := s.store.GoalByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(p, g.Owner); err != nil {
		return err
	}
	if err := s.store.DeleteGoal(ctx, id); err != nil {
		return &core.StorageError{Op: "delete goal", Err: err}
	}
	return nil
}
