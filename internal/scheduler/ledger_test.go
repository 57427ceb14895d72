package scheduler

import (
	"testing"

	"github.com/alexanderramin/wayfarer/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBudgetLedger_RejectsNegative(t *testing.T) {
	_, err := NewBudgetLedger(decimal.NewFromInt(-1))
	assert.Error(t, err)
}

func TestBudgetLedger_CommitAndRemaining(t *testing.T) {
	l, err := NewBudgetLedger(decimal.NewFromInt(100))
	require.NoError(t, err)

	require.NoError(t, l.Commit("a", testutil.Date(1), decimal.NewFromFloat(30.5)))
	require.NoError(t, l.Commit("b", testutil.Date(2), decimal.NewFromFloat(69.5)))

	assert.True(t, l.Remaining().IsZero())
	assert.True(t, l.Exhausted())
	assert.Len(t, l.Entries(), 2)

	// Free commits still fit at zero balance.
	require.NoError(t, l.Commit("free", testutil.Date(2), decimal.Zero))
}

func TestBudgetLedger_RejectsOverspend(t *testing.T) {
	l, err := NewBudgetLedger(decimal.NewFromInt(50))
	require.NoError(t, err)
	require.NoError(t, l.Commit("a", testutil.Date(1), decimal.NewFromInt(40)))

	err = l.Commit("b", testutil.Date(1), decimal.NewFromInt(11))
	assert.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Equal(t, "10", l.Remaining().String(), "ledger unchanged after a rejected commit")
	assert.Len(t, l.Entries(), 1)

	assert.Error(t, l.Commit("neg", testutil.Date(1), decimal.NewFromInt(-5)))
}

func TestBudgetLedger_ZeroCeilingIsNotExhausted(t *testing.T) {
	l, err := NewBudgetLedger(decimal.Zero)
	require.NoError(t, err)
	assert.False(t, l.Exhausted())
	assert.True(t, l.CanAfford(decimal.Zero))
	assert.False(t, l.CanAfford(decimal.NewFromInt(1)))
}
