package pipeline

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetbuddy/internal/model"
)

// MaxDaysRemaining is the longest planning horizon Project accepts.
const MaxDaysRemaining = 31

// Project estimates whether a planned purchase fits the budget. ok is false
// when planned is absent or daysRemaining is outside 1..MaxDaysRemaining.
//
// Spending is subtracted from the balance even though the balance already
// reflects it, so remaining budget counts every transaction twice.
func Project(balance decimal.Decimal, txs []model.Transaction, planned decimal.NullDecimal, daysRemaining int) (model.Verdict, bool) {
	if !planned.Valid || daysRemaining <= 0 || daysRemaining > MaxDaysRemaining {
		return model.Verdict{}, false
	}

	totalSpent := TotalSpent(txs)
	remaining := balance.Sub(totalSpent)
	after := remaining.Sub(planned.Decimal)
	daily := after.Div(decimal.NewFromInt(int64(daysRemaining)))

	return model.Verdict{
		CanAfford:           !after.IsNegative(),
		TotalSpent:          totalSpent.Round(2),
		RemainingBudget:     remaining.Round(2),
		AfterPurchaseBudget: after.Round(2),
		DailyBudget:         daily.Round(2),
		PlannedPurchase:     planned.Decimal,
		DaysRemaining:       daysRemaining,
	}, true
}

// ParsePlanned reads a planned purchase amount. Blank or unparseable input
// yields an absent value.
func ParsePlanned(s string) decimal.NullDecimal {
	if strings.TrimSpace(s) == "" {
		return decimal.NullDecimal{}
	}
	d, err := model.ParseAmount(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// DaysLeftInMonth counts today and every later day of t's month.
func DaysLeftInMonth(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfNext.AddDate(0, 0, -1).Day()
	return lastDay - t.Day() + 1
}
