package model

import "github.com/shopspring/decimal"

// DefaultBalance is the balance of a fresh or reset ledger.
var DefaultBalance = decimal.NewFromInt(2000)

// LedgerState is the complete persisted state of the ledger.
type LedgerState struct {
	Transactions []Transaction
	Balance      decimal.Decimal
}

// DefaultLedgerState returns an empty ledger holding DefaultBalance.
func DefaultLedgerState() LedgerState {
	return LedgerState{
		Transactions: []Transaction{},
		Balance:      DefaultBalance,
	}
}

// Clone returns a copy that shares no slice storage with s.
func (s LedgerState) Clone() LedgerState {
	txs := make([]Transaction, len(s.Transactions))
	copy(txs, s.Transactions)
	return LedgerState{Transactions: txs, Balance: s.Balance}
}
