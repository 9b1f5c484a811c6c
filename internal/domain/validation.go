package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidateAmount checks that amount is strictly positive.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// ParseAmount parses a decimal amount typed by a user: an optional sign,
// digits and an optional fraction. Exponent notation is rejected.
// It does not check the sign; the account does that.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty input", ErrMalformedAmount)
	}
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}

	return amount, nil
}

// FormatAmount renders an amount with at least two fraction digits,
// keeping any extra precision the value carries.
func FormatAmount(amount decimal.Decimal) string {
	if amount.Exponent() < -2 {
		return amount.StringFixed(-amount.Exponent())
	}
	return amount.StringFixed(2)
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
