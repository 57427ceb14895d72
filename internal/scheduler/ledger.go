package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrBudgetExceeded is returned when a commit would push spend past the
// ceiling. Callers check affordability first, so seeing it means a bug.
var ErrBudgetExceeded = errors.New("budget exceeded on commit")

type LedgerEntry struct {
	ActivityID string
	Date       time.Time
	Amount     decimal.Decimal
}

// BudgetLedger tracks trip-wide spend against a ceiling. It is owned by a
// single planning run and is not safe for concurrent use.
type BudgetLedger struct {
	ceiling   decimal.Decimal
	committed decimal.Decimal
	entries   []LedgerEntry
}

func NewBudgetLedger(ceiling decimal.Decimal) (*BudgetLedger, error) {
	if ceiling.IsNegative() {
		return nil, fmt.Errorf("budget ceiling must be non-negative, got %s", ceiling)
	}
	return &BudgetLedger{ceiling: ceiling}, nil
}

func (l *BudgetLedger) Ceiling() decimal.Decimal   { return l.ceiling }
func (l *BudgetLedger) Committed() decimal.Decimal { return l.committed }

func (l *BudgetLedger) Remaining() decimal.Decimal {
	return l.ceiling.Sub(l.committed)
}

func (l *BudgetLedger) CanAfford(amount decimal.Decimal) bool {
	return !amount.IsNegative() && l.committed.Add(amount).LessThanOrEqual(l.ceiling)
}

// Exhausted reports whether a positive budget has been fully spent.
func (l *BudgetLedger) Exhausted() bool {
	return l.ceiling.IsPositive() && l.Remaining().Sign() <= 0
}

// Commit records spend for an activity. The ledger is unchanged on error.
func (l *BudgetLedger) Commit(activityID string, date time.Time, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("commit %s: negative amount %s", activityID, amount)
	}
	if !l.CanAfford(amount) {
		return fmt.Errorf("commit %s for %s with %s remaining: %w",
			activityID, amount.StringFixed(2), l.Remaining().StringFixed(2), ErrBudgetExceeded)
	}
	l.committed = l.committed.Add(amount)
	l.entries = append(l.entries, LedgerEntry{ActivityID: activityID, Date: date, Amount: amount})
	return nil
}

func (l *BudgetLedger) Entries() []LedgerEntry {
	out := make([]LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
