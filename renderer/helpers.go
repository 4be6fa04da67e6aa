package renderer

import (
	"bytes"
	"io"
	"strings"

	"github.com/etnz/tradepnl"
	"github.com/shopspring/decimal"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// money formats a fiat value, e.g. "€1,234.56".
func money(d decimal.Decimal, currency string) string { return tradepnl.M(d, currency).String() }

// signed formats a fiat value with an explicit sign, zero is "-".
func signed(d decimal.Decimal, currency string) string {
	return tradepnl.M(d, currency).SignedString()
}

// quantity formats an asset amount with two decimals.
func quantity(d decimal.Decimal) string { return d.StringFixed(tradepnl.Places) }

// pair names the traded pair, e.g. "USDT/EUR".
func pair(asset, currency string) string {
	if asset == "" {
		return currency
	}
	return asset + "/" + currency
}

// title upper cases the first letter of s.
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
