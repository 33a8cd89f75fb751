// Package model defines the core data types for budgetbuddy.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the format used when a transaction date is defaulted to today.
const DateLayout = "2006-01-02"

var (
	ErrEmptyName       = errors.New("transaction name is required")
	ErrEmptyDate       = errors.New("transaction date is required")
	ErrUnknownCategory = errors.New("unknown category")
)

// Category is one of a fixed set of spending categories.
type Category string

const (
	CategoryFoodDrink     Category = "Food/Drink"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryOther         Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFoodDrink,
	CategoryTransport,
	CategoryEntertainment,
	CategoryOther,
}

// Known reports whether c is one of Categories, spelled exactly.
func (c Category) Known() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// ParseCategory matches s against the known categories, ignoring case.
// "food" and "drink" are accepted for Food/Drink.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	switch strings.ToLower(s) {
	case "food", "drink", "food/drinks", "food & drink":
		return CategoryFoodDrink, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Transaction is a single recorded spend or credit. It is never modified
// after creation.
type Transaction struct {
	ID       int64
	Name     string
	Amount   decimal.Decimal
	Category Category
	Date     string
}

// TransactionInput carries the user-supplied fields of a new transaction.
type TransactionInput struct {
	Name     string
	Amount   decimal.Decimal
	Category Category
	Date     string
}

// Validate checks that every required field is present and the category is
// one of Categories.
func (in TransactionInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if !in.Category.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, in.Category)
	}
	if strings.TrimSpace(in.Date) == "" {
		return ErrEmptyDate
	}
	return nil
}

// ParseTransactionInput turns raw user-entered fields into a validated input.
// A blank date means today.
func ParseTransactionInput(name, amount, category, date string, now time.Time) (TransactionInput, error) {
	amt, err := ParseAmount(amount)
	if err != nil {
		return TransactionInput{}, err
	}
	cat, err := ParseCategory(category)
	if err != nil {
		return TransactionInput{}, err
	}
	if strings.TrimSpace(date) == "" {
		date = now.Format(DateLayout)
	}

	in := TransactionInput{
		Name:     strings.TrimSpace(name),
		Amount:   amt,
		Category: cat,
		Date:     strings.TrimSpace(date),
	}
	return in, in.Validate()
}
