package services

import (
	"context"
	"strings"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// ReportService aggregates a slice of the ledger into income/expense totals
// and a per-category expense breakdown. Generation is read only and side
// effect free.
type ReportService struct {
	store ledger.TransactionStore
	guard auth.Guard
}

func NewReportService(store ledger.TransactionStore, guard auth.Guard) *ReportService {
	return &ReportService{store: store, guard: guard}
}

// Generate builds a report for the owner over [start, end], both ends
// inclusive. A nil categories slice means no category restriction; a nil
// tags slice means no tag restriction. With a filter present, transactions
// lacking the filtered attribute (no category, no tags) still pass.
// Categories without any expense are absent from the breakdown.
func (s *ReportService) Generate(ctx context.Context, p auth.Principal, owner string, start, end time.Time, categories []core.Category, tags []string) (*core.Report, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, &core.ValidationError{Reason: "owner is required"}
	}
	if err := s.guard.Authorize(p, owner); err != nil {
		return nil, err
	}

	transactions, err := s.store.TransactionsInWindow(ctx, owner, start, end)
	if err != nil {
		return nil, &core.StorageError{Op: "load transactions for report", Err: err}
	}

	var categorySet map[core.Category]bool
	if categories != nil {
		categorySet = make(map[core.Category]bool, len(categories))
		for _, c := range categories {
			categorySet[c] = true
		}
	}
	var tagSet map[string]bool
	if tags != nil {
		tagSet = make(map[string]bool, len(tags))
		for _, t := range tags {
			tagSet[t] = true
		}
	}

	report := core.NewReport()
	for _, t := range transactions {
		if categorySet != nil && t.Category != "" && !categorySet[t.Category] {
			continue
		}
		if tagSet != nil && len(t.Tags) > 0 && !intersects(t.Tags, tagSet) {
			continue
		}
		report.Accumulate(t)
	}
	return report, nil
}

func intersects(tags []string, set map[string]bool) bool {
	for _, t := range tags {
		if set[t] {
			return true
		}
	}
	return false
}
