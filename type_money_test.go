package tradepnl

import (
	"errors"
	"testing"
)

func TestValidateCurrency(t *testing.T) {
	testCases := []struct {
		input, want string
		wantErr     bool
	}{
		{"EUR", "EUR", false},
		{" usd ", "USD", false},
		{"", "", true},
		{"EURO", "", true},
	}
	for _, tc := range testCases {
		got, err := ValidateCurrency(tc.input)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidCurrency) {
				t.Errorf("ValidateCurrency(%q) error = %v, want ErrInvalidCurrency", tc.input, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ValidateCurrency(%q) = %q, %v, want %q", tc.input, got, err, tc.want)
		}
	}
}

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		money        Money
		want, signed string
	}{
		{M("1234.567", "USD"), "$1,234.57", "+$1,234.57"},
		{M(-12, "USD"), "-$12.00", "-$12.00"},
		{M(0, "USD"), "$0.00", "-"},
	}
	for _, tc := range testCases {
		if got := tc.money.String(); got != tc.want {
			t.Errorf("%v.String() = %q, want %q", tc.money.Decimal(), got, tc.want)
		}
		if got := tc.money.SignedString(); got != tc.signed {
			t.Errorf("%v.SignedString() = %q, want %q", tc.money.Decimal(), got, tc.signed)
		}
	}
}
