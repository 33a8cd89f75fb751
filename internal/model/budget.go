package model

import "github.com/shopspring/decimal"

// Verdict is the result of an affordability projection. Money figures are
// rounded to cents.
type Verdict struct {
	CanAfford           bool
	TotalSpent          decimal.Decimal
	RemainingBudget     decimal.Decimal
	AfterPurchaseBudget decimal.Decimal
	DailyBudget         decimal.Decimal
	PlannedPurchase     decimal.Decimal
	DaysRemaining       int
}
