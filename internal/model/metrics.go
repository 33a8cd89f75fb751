package model

import "github.com/shopspring/decimal"

// CategoryTotal holds the summed amount of one category.
type CategoryTotal struct {
	Category Category
	Total    decimal.Decimal
	Count    int
}

// CategoryTotals is an ordered category breakdown. Order is the order in
// which each category first appeared in the transaction list.
type CategoryTotals []CategoryTotal

// Lookup returns the total for c and whether c appears at all.
func (ct CategoryTotals) Lookup(c Category) (decimal.Decimal, bool) {
	for _, t := range ct {
		if t.Category == c {
			return t.Total, true
		}
	}
	return decimal.Zero, false
}

// Map returns the breakdown keyed by category.
func (ct CategoryTotals) Map() map[Category]decimal.Decimal {
	m := make(map[Category]decimal.Decimal, len(ct))
	for _, t := range ct {
		m[t.Category] = t.Total
	}
	return m
}

// Sum returns the total across all categories.
func (ct CategoryTotals) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range ct {
		sum = sum.Add(t.Total)
	}
	return sum
}

// Share returns entry i's fraction of the absolute grand total, 0..1.
func (ct CategoryTotals) Share(i int) float64 {
	if i < 0 || i >= len(ct) {
		return 0
	}
	abs := decimal.Zero
	for _, t := range ct {
		abs = abs.Add(t.Total.Abs())
	}
	if abs.IsZero() {
		return 0
	}
	f, _ := ct[i].Total.Abs().Div(abs).Float64()
	return f
}
