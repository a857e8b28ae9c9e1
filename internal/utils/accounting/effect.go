package accounting

import (
	"fmt"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedEffect returns the effect a transaction has on its account balance:
// INCOME adds the amount, EXPENSE subtracts it. Amount is expected to be a
// non-negative magnitude; the sign comes exclusively from the type.
func SignedEffect(txnType domain.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	switch txnType {
	case domain.Income:
		return amount, nil
	case domain.Expense:
		return amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown transaction type %q", txnType)
	}
}

// BalanceChanges accumulates net balance deltas per account for one ledger
// mutation. Reversals and applications against the same account collapse
// into a single delta, so the repository can apply the whole mutation with
// one update per affected account.
type BalanceChanges map[string]decimal.Decimal

// Apply records the effect of a transaction against its account. Entries
// with no account are a valid no-op.
func (bc BalanceChanges) Apply(accountID string, txnType domain.TransactionType, amount decimal.Decimal) error {
	if accountID == "" {
		return nil
	}
	effect, err := SignedEffect(txnType, amount)
	if err != nil {
		return err
	}
	bc[accountID] = bc[accountID].Add(effect)
	return nil
}

// Reverse records the undoing of a transaction's prior effect.
func (bc BalanceChanges) Reverse(accountID string, txnType domain.TransactionType, amount decimal.Decimal) error {
	if accountID == "" {
		return nil
	}
	effect, err := SignedEffect(txnType, amount)
	if err != nil {
		return err
	}
	bc[accountID] = bc[accountID].Sub(effect)
	return nil
}
