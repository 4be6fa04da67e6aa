package tradepnl

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a fiat value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money of value in currency.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | string | decimal.Decimal](value T, currency string) Money {
	return Money{value: D(value), cur: currency}
}

// ValidateCurrency checks that code is a known ISO 4217 currency code and
// returns its canonical upper case form.
func ValidateCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", fmt.Errorf("%w: empty code", ErrInvalidCurrency)
	}
	if money.GetCurrency(code) == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return code, nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, e.g. "€1,234.56".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
