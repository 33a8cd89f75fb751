package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when an amount cannot be read as a finite number.
var ErrInvalidAmount = errors.New("invalid amount")

// groupedDigits matches amounts whose commas separate groups of three digits.
var groupedDigits = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`)

// ParseAmount reads a signed decimal amount. A leading "$" and thousands
// separators are tolerated.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	neg := false
	if strings.HasPrefix(clean, "-") {
		neg = true
		clean = strings.TrimSpace(clean[1:])
	} else if strings.HasPrefix(clean, "+") {
		clean = strings.TrimSpace(clean[1:])
	}
	clean = strings.TrimPrefix(clean, "$")
	if strings.Contains(clean, ",") {
		if !groupedDigits.MatchString(clean) {
			return decimal.Zero, fmt.Errorf("%w: misplaced thousands separator in %q", ErrInvalidAmount, s)
		}
		clean = strings.ReplaceAll(clean, ",", "")
	}
	if clean == "" || strings.ContainsAny(clean, "+-eEnN") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}
