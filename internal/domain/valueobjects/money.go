package valueobjects

import (
	"fmt"
	"math"
	"strings"

	"oficina_billing/internal/domain/errs"
)

// DefaultCurrency is assumed when the caller does not name one.
const DefaultCurrency = "BRL"

// Money is an immutable monetary amount in minor units (centavos for BRL).
// The minor-unit integer is the source of truth; major-unit views are derived
// for display only. Every operation returns a new value.
type Money struct {
	amount   int64
	currency string
}

// NewMoney creates a Money value. The currency code is normalized to upper
// case; a blank currency or a negative amount is rejected.
func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValidation("amount cannot be negative")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return Money{}, errs.NewValidation("currency cannot be empty")
	}
	return Money{amount: amount, currency: currency}, nil
}

// NewBRL is a shorthand for amounts in the default currency.
func NewBRL(amount int64) (Money, error) {
	return NewMoney(amount, DefaultCurrency)
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// MajorAmount returns the amount in major units (e.g. reais).
func (m Money) MajorAmount() float64 {
	return float64(m.amount) / 100
}

// IsZero reports whether the value is the zero amount.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// Add returns the sum of two values of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, &errs.CurrencyMismatchError{Operation: "add", Left: m.currency, Right: other.currency}
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract returns the difference of two values of the same currency.
// A negative result is rejected.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, &errs.CurrencyMismatchError{Operation: "subtract", Left: m.currency, Right: other.currency}
	}
	result := m.amount - other.amount
	if result < 0 {
		return Money{}, errs.NewValidation("subtraction result cannot be negative")
	}
	return Money{amount: result, currency: m.currency}, nil
}

// Multiply scales the amount by a non-negative factor, rounding half away
// from zero to the nearest minor unit.
func (m Money) Multiply(factor float64) (Money, error) {
	if factor < 0 {
		return Money{}, errs.NewValidation("factor cannot be negative")
	}
	return Money{amount: int64(math.Round(float64(m.amount) * factor)), currency: m.currency}, nil
}

// Equals reports structural equality. Unlike the ordering comparisons it does
// not fail on mismatched currencies; it simply returns false.
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// GreaterThan reports m > other for values of the same currency.
func (m Money) GreaterThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, &errs.CurrencyMismatchError{Operation: "compare", Left: m.currency, Right: other.currency}
	}
	return m.amount > other.amount, nil
}

// LessThan reports m < other for values of the same currency.
func (m Money) LessThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, &errs.CurrencyMismatchError{Operation: "compare", Left: m.currency, Right: other.currency}
	}
	return m.amount < other.amount, nil
}

func (m Money) String() string {
	return fmt.Sprintf("%s %.2f", m.currency, m.MajorAmount())
}

// Format renders the value for display in pt-BR convention
// (thousands separated by dots, comma before the cents).
func (m Money) Format() string {
	symbol := m.currency + " "
	if m.currency == DefaultCurrency {
		symbol = "R$ "
	}

	units := m.amount / 100
	cents := m.amount % 100

	digits := fmt.Sprintf("%d", units)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(d)
	}
	return fmt.Sprintf("%s%s,%02d", symbol, grouped.String(), cents)
}
