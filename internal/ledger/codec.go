package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetbuddy/internal/model"
)

// Storage keys.
const (
	KeyTransactions = "transactions"
	KeyBalance      = "balance"
)

// wireTransaction is the persisted form of a transaction. Amounts are JSON
// numbers carrying the exact decimal text.
type wireTransaction struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
}

// snapshot is the persisted form of the whole ledger, used by export.
type snapshot struct {
	Transactions []wireTransaction `json:"transactions"`
	Balance      json.Number       `json:"balance"`
}

func toWire(txs []model.Transaction) []wireTransaction {
	out := make([]wireTransaction, len(txs))
	for i, tx := range txs {
		out[i] = wireTransaction{
			ID:       tx.ID,
			Name:     tx.Name,
			Amount:   json.Number(tx.Amount.String()),
			Category: string(tx.Category),
			Date:     tx.Date,
		}
	}
	return out
}

// EncodeTransactions serializes txs for the transactions key.
func EncodeTransactions(txs []model.Transaction) (string, error) {
	data, err := json.Marshal(toWire(txs))
	if err != nil {
		return "", fmt.Errorf("encoding transactions: %w", err)
	}
	return string(data), nil
}

// DecodeTransactions parses the value of the transactions key.
func DecodeTransactions(s string) ([]model.Transaction, error) {
	var wire []wireTransaction
	if err := json.Unmarshal([]byte(s), &wire); err != nil {
		return nil, fmt.Errorf("decoding transactions: %w", err)
	}
	if wire == nil {
		return nil, fmt.Errorf("decoding transactions: not an array")
	}

	txs := make([]model.Transaction, 0, len(wire))
	for i, w := range wire {
		amount, err := decimal.NewFromString(w.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("decoding transaction %d amount: %w", i, err)
		}
		if !model.Category(w.Category).Known() {
			return nil, fmt.Errorf("decoding transaction %d: %w: %q", i, model.ErrUnknownCategory, w.Category)
		}
		txs = append(txs, model.Transaction{
			ID:       w.ID,
			Name:     w.Name,
			Amount:   amount,
			Category: model.Category(w.Category),
			Date:     w.Date,
		})
	}
	return txs, nil
}

// EncodeBalance serializes b as a bare JSON number.
func EncodeBalance(b decimal.Decimal) (string, error) {
	data, err := json.Marshal(json.Number(b.String()))
	if err != nil {
		return "", fmt.Errorf("encoding balance: %w", err)
	}
	return string(data), nil
}

// DecodeBalance parses the value of the balance key.
func DecodeBalance(s string) (decimal.Decimal, error) {
	var n json.Number
	if err := json.Unmarshal([]byte(s), &n); err != nil {
		return decimal.Zero, fmt.Errorf("decoding balance: %w", err)
	}
	b, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("decoding balance: %w", err)
	}
	return b, nil
}

// MarshalSnapshot renders the full state in the persisted wire format.
func MarshalSnapshot(s model.LedgerState) ([]byte, error) {
	return json.MarshalIndent(snapshot{
		Transactions: toWire(s.Transactions),
		Balance:      json.Number(s.Balance.String()),
	}, "", "  ")
}
