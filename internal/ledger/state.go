// Package ledger owns the transaction list and balance. Transitions are pure
// functions over model.LedgerState; Ledger applies them, persists the result
// and notifies subscribers.
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetbuddy/internal/model"
)

// ErrBalanceDrift reports a balance that no longer matches the transactions.
var ErrBalanceDrift = errors.New("balance does not match transactions")

// NewTransaction builds a transaction from validated input.
func NewTransaction(in model.TransactionInput, id int64) model.Transaction {
	return model.Transaction{
		ID:       id,
		Name:     in.Name,
		Amount:   in.Amount,
		Category: in.Category,
		Date:     in.Date,
	}
}

// Add returns the state with tx appended and its amount added to the balance.
// s is not modified.
func Add(s model.LedgerState, tx model.Transaction) model.LedgerState {
	next := make([]model.Transaction, len(s.Transactions), len(s.Transactions)+1)
	copy(next, s.Transactions)
	return model.LedgerState{
		Transactions: append(next, tx),
		Balance:      s.Balance.Add(tx.Amount),
	}
}

// Reset returns the default state.
func Reset() model.LedgerState {
	return model.DefaultLedgerState()
}

// ExpectedBalance is DefaultBalance plus every transaction amount.
func ExpectedBalance(txs []model.Transaction) decimal.Decimal {
	b := model.DefaultBalance
	for _, tx := range txs {
		b = b.Add(tx.Amount)
	}
	return b
}

// Verify checks the balance against the transaction list.
func Verify(s model.LedgerState) error {
	want := ExpectedBalance(s.Transactions)
	if !s.Balance.Equal(want) {
		return fmt.Errorf("%w: stored %s, expected %s", ErrBalanceDrift, s.Balance.StringFixed(2), want.StringFixed(2))
	}
	return nil
}

// NextID returns one past the highest id in txs, or 1 when txs is empty.
func NextID(txs []model.Transaction) int64 {
	var max int64
	for _, tx := range txs {
		if tx.ID > max {
			max = tx.ID
		}
	}
	return max + 1
}
