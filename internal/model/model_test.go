package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10", "10"},
		{"-12.50", "-12.5"},
		{"+3", "3"},
		{"$1,250.75", "1250.75"},
		{"12,345,678", "12345678"},
		{"-$4.20", "-4.2"},
		{" 0.01 ", "0.01"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestParseAmount_Rejects(t *testing.T) {
	for _, in := range []string{"", "  ", "abc", "NaN", "Inf", "-", "$", "1.2.3", "1e3", "12abc", "1,50", "1,2,3", ",100", "1234,567", "1,000."} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("transport")
	require.NoError(t, err)
	assert.Equal(t, CategoryTransport, c)

	c, err = ParseCategory("Food/Drink")
	require.NoError(t, err)
	assert.Equal(t, CategoryFoodDrink, c)

	c, err = ParseCategory("food")
	require.NoError(t, err)
	assert.Equal(t, CategoryFoodDrink, c)

	_, err = ParseCategory("Rent")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestTransactionInputValidate(t *testing.T) {
	valid := TransactionInput{Name: "Coffee", Amount: decimal.NewFromInt(4), Category: CategoryFoodDrink, Date: "2024-05-01"}
	assert.NoError(t, valid.Validate())

	noName := valid
	noName.Name = "  "
	assert.ErrorIs(t, noName.Validate(), ErrEmptyName)

	noDate := valid
	noDate.Date = ""
	assert.ErrorIs(t, noDate.Validate(), ErrEmptyDate)

	noCat := valid
	noCat.Category = ""
	assert.ErrorIs(t, noCat.Validate(), ErrUnknownCategory)

	rent := valid
	rent.Category = "Rent"
	assert.ErrorIs(t, rent.Validate(), ErrUnknownCategory)
}

func TestCategoryKnown(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Known(), c)
	}
	assert.False(t, Category("Rent").Known())
	assert.False(t, Category("transport").Known(), "stored categories must use the exact spelling")
}

func TestLedgerStateClone(t *testing.T) {
	s := DefaultLedgerState()
	s.Transactions = append(s.Transactions, Transaction{ID: 1, Name: "a"})

	c := s.Clone()
	c.Transactions[0].Name = "b"

	assert.Equal(t, "a", s.Transactions[0].Name)
	assert.True(t, c.Balance.Equal(DefaultBalance))
}

func TestCategoryTotals(t *testing.T) {
	ct := CategoryTotals{
		{Category: CategoryFoodDrink, Total: decimal.NewFromInt(30), Count: 2},
		{Category: CategoryOther, Total: decimal.NewFromInt(-10), Count: 1},
	}

	got, ok := ct.Lookup(CategoryOther)
	assert.True(t, ok)
	assert.True(t, got.Equal(decimal.NewFromInt(-10)))

	_, ok = ct.Lookup(CategoryTransport)
	assert.False(t, ok)

	assert.True(t, ct.Sum().Equal(decimal.NewFromInt(20)))
	assert.InDelta(t, 0.75, ct.Share(0), 1e-9)
	assert.InDelta(t, 0.25, ct.Share(1), 1e-9)
	assert.Zero(t, ct.Share(5))
	assert.Len(t, ct.Map(), 2)
}

func TestParseTransactionInput(t *testing.T) {
	now := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)

	in, err := ParseTransactionInput("  Lunch ", "12.50", "food", "", now)
	require.NoError(t, err)
	assert.Equal(t, "Lunch", in.Name)
	assert.True(t, in.Amount.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, CategoryFoodDrink, in.Category)
	assert.Equal(t, "2024-03-09", in.Date)

	in, err = ParseTransactionInput("Refund", "-20", "Other", "last tuesday", now)
	require.NoError(t, err)
	assert.Equal(t, "last tuesday", in.Date)
	assert.True(t, in.Amount.IsNegative())
}

func TestParseTransactionInput_Errors(t *testing.T) {
	now := time.Now()

	_, err := ParseTransactionInput("Lunch", "twelve", "food", "", now)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseTransactionInput("Lunch", "12", "groceries", "", now)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = ParseTransactionInput("   ", "12", "food", "", now)
	assert.ErrorIs(t, err, ErrEmptyName)
}
