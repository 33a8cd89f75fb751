// Package pipeline derives views from ledger state: category breakdowns,
// affordability projections and filtered transaction lists.
package pipeline

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetbuddy/internal/model"
)

// Aggregate sums amounts per category. Categories appear in the order they
// first occur in txs; categories with no transactions are absent.
func Aggregate(txs []model.Transaction) model.CategoryTotals {
	totals := make(model.CategoryTotals, 0, len(model.Categories))
	index := make(map[model.Category]int)

	for _, tx := range txs {
		i, ok := index[tx.Category]
		if !ok {
			i = len(totals)
			index[tx.Category] = i
			totals = append(totals, model.CategoryTotal{Category: tx.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(tx.Amount)
		totals[i].Count++
	}

	return totals
}

// SortByTotal returns a copy of ct ordered by descending absolute total.
func SortByTotal(ct model.CategoryTotals) model.CategoryTotals {
	out := make(model.CategoryTotals, len(ct))
	copy(out, ct)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Abs().GreaterThan(out[j].Total.Abs())
	})
	return out
}

// TotalSpent is the sum of every transaction amount.
func TotalSpent(txs []model.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}
	return sum
}

// DateTotal holds the summed amount for one transaction date.
type DateTotal struct {
	Date  string
	Total decimal.Decimal
	Count int
}

// AggregateDates sums amounts per date string, most recent first.
// ISO dates sort correctly; other formats sort lexically.
func AggregateDates(txs []model.Transaction) []DateTotal {
	byDate := make(map[string]*DateTotal)
	for _, tx := range txs {
		dt, ok := byDate[tx.Date]
		if !ok {
			dt = &DateTotal{Date: tx.Date, Total: decimal.Zero}
			byDate[tx.Date] = dt
		}
		dt.Total = dt.Total.Add(tx.Amount)
		dt.Count++
	}

	days := make([]DateTotal, 0, len(byDate))
	for _, dt := range byDate {
		days = append(days, *dt)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})
	return days
}

// BalanceHistory returns the balance before any transaction followed by the
// balance after each one, ending at balance.
func BalanceHistory(s model.LedgerState) []decimal.Decimal {
	running := s.Balance.Sub(TotalSpent(s.Transactions))
	history := make([]decimal.Decimal, 0, len(s.Transactions)+1)
	history = append(history, running)
	for _, tx := range s.Transactions {
		running = running.Add(tx.Amount)
		history = append(history, running)
	}
	return history
}

// FilterByCategory returns transactions in category c.
func FilterByCategory(txs []model.Transaction, c model.Category) []model.Transaction {
	var out []model.Transaction
	for _, tx := range txs {
		if tx.Category == c {
			out = append(out, tx)
		}
	}
	return out
}

// FilterBySearch returns transactions whose name, category or date contains
// query, ignoring case.
func FilterBySearch(txs []model.Transaction, query string) []model.Transaction {
	if query == "" {
		return txs
	}
	var out []model.Transaction
	for _, tx := range txs {
		if containsIgnoreCase(tx.Name, query) ||
			containsIgnoreCase(string(tx.Category), query) ||
			containsIgnoreCase(tx.Date, query) {
			out = append(out, tx)
		}
	}
	return out
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
