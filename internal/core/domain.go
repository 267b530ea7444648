package core

import (
	"strings"
	"time"
)

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

const (
	Daily   RecurrencePattern = "DAILY"
	Weekly  RecurrencePattern = "WEEKLY"
	Monthly RecurrencePattern = "MONTHLY"
)

const (
	GoalNotStarted GoalStatus = "NOT_STARTED"
	GoalInProgress GoalStatus = "IN_PROGRESS"
	GoalCompleted  GoalStatus = "COMPLETED"
)

// Well-known transaction categories. The set is open ended: stores and
// reports accept any non-empty label, these are just the seeded values.
const (
	CategoryFood          Category = "FOOD"
	CategoryTransport     Category = "TRANSPORT"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategorySalary        Category = "SALARY"
)

type (
	TransactionType   string
	RecurrencePattern string
	GoalStatus        string
	Category          string

	Transaction struct {
		ID          int64
		Owner       string
		Type        TransactionType
		Category    Category
		Date        time.Time
		Amount      Money
		Description string
		Tags        []string
		Recurring   bool
		Pattern     RecurrencePattern
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	Budget struct {
		ID       int64
		Owner    string
		Category string // free label, not cross-checked against the transaction enum
		Target   Money
		Spent    Money // running counter, moved only through propagation or direct update
		Start    time.Time
		End      time.Time
	}

	Goal struct {
		ID     int64
		Owner  string
		Name   string
		Status GoalStatus
		Target Money
		Saved  Money // running counter
		Start  time.Time
		End    time.Time
	}
)

// KnownCategories lists the seeded category values in declaration order.
func KnownCategories() []Category {
	return []Category{CategoryFood, CategoryTransport, CategoryEntertainment, CategorySalary}
}

// Validate checks the fields a caller must supply before a transaction can be
// persisted. Server-assigned fields (ID, CreatedAt, UpdatedAt) are ignored.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Owner) == "" {
		return &ValidationError{Reason: "owner is required"}
	}
	if t.Type == "" {
		return &ValidationError{Reason: "transaction type is required"}
	}
	if t.Type != Income && t.Type != Expense {
		return &ValidationError{Reason: "transaction type must be INCOME or EXPENSE"}
	}
	if t.Category == "" {
		return &ValidationError{Reason: "transaction category is required"}
	}
	if t.Date.IsZero() {
		return &ValidationError{Reason: "transaction date is required"}
	}
	if t.Amount.Cents <= 0 {
		return &ValidationError{Reason: "transaction amount must be greater than zero"}
	}
	if strings.TrimSpace(t.Description) == "" {
		return &ValidationError{Reason: "transaction description is required"}
	}
	if t.Recurring && t.Pattern == "" {
		return &ValidationError{Reason: "recurrence pattern is required for recurring transactions"}
	}
	if t.Pattern != "" {
		switch t.Pattern {
		case Daily, Weekly, Monthly:
		default:
			return &ValidationError{Reason: "recurrence pattern must be DAILY, WEEKLY or MONTHLY"}
		}
	}
	return nil
}

// StatusForSaved returns the lifecycle status implied by the current saved
// total: COMPLETED once saved reaches the target, IN_PROGRESS otherwise.
// A zero target counts as already reached.
func (g Goal) StatusForSaved() GoalStatus {
	if g.Saved.Cents >= g.Target.Cents {
		return GoalCompleted
	}
	return GoalInProgress
}

// Exceeded reports whether the running spent total has passed the target.
func (b Budget) Exceeded() bool {
	return b.Spent.Cents > b.Target.Cents
}

// HasTag reports whether the transaction carries the given tag.
func (t Transaction) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}
