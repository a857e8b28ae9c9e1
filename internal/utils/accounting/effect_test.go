package accounting

import (
	"testing"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedEffect(t *testing.T) {
	amt := decimal.NewFromInt(100)

	income, err := SignedEffect(domain.Income, amt)
	require.NoError(t, err)
	assert.True(t, income.Equal(decimal.NewFromInt(100)))

	expense, err := SignedEffect(domain.Expense, amt)
	require.NoError(t, err)
	assert.True(t, expense.Equal(decimal.NewFromInt(-100)))

	_, err = SignedEffect(domain.TransactionType("TRANSFER"), amt)
	assert.Error(t, err)
}

func TestBalanceChanges_ReassignmentCollapses(t *testing.T) {
	// Moving a 100 expense from account A to account B as a 40 expense:
	// A gets +100 (reversal), B gets -40 (new effect).
	bc := BalanceChanges{}
	require.NoError(t, bc.Reverse("A", domain.Expense, decimal.NewFromInt(100)))
	require.NoError(t, bc.Apply("B", domain.Expense, decimal.NewFromInt(40)))

	assert.True(t, bc["A"].Equal(decimal.NewFromInt(100)))
	assert.True(t, bc["B"].Equal(decimal.NewFromInt(-40)))
}

func TestBalanceChanges_SameAccountNets(t *testing.T) {
	// Amount edit on the same account nets to a single delta.
	bc := BalanceChanges{}
	require.NoError(t, bc.Reverse("A", domain.Expense, decimal.NewFromInt(100)))
	require.NoError(t, bc.Apply("A", domain.Expense, decimal.NewFromInt(40)))

	assert.True(t, bc["A"].Equal(decimal.NewFromInt(60)))
}

func TestBalanceChanges_NoAccountIsNoop(t *testing.T) {
	bc := BalanceChanges{}
	require.NoError(t, bc.Apply("", domain.Expense, decimal.NewFromInt(100)))
	assert.Empty(t, bc)
}
