package tradepnl

import (
	"testing"
	"time"

	"github.com/etnz/tradepnl/date"
)

func TestLedger_Select(t *testing.T) {
	pending := buy(jan(2), "1", "1").WithID("pending")
	pending.Status = Pending

	ledger := NewLedger()
	ledger.Append(
		buy(jan(3), "1", "1").WithID("c"),
		buy(jan(1), "1", "1").WithID("a"),
		pending,
		NewBuy(jan(2), "USDT", "USD", D(1), D(1)).WithID("usd"),
		NewBuy(jan(2), "BTC", "EUR", D(1), D(1)).WithID("btc"),
		sell(jan(2), "1", "1").WithID("b"),
		buy(jan(5), "1", "1").WithID("d"),
	)

	testCases := []struct {
		name  string
		query Query
		want  []string
	}{
		{"currency only", Query{FiatCurrency: "EUR"}, []string{"a", "btc", "b", "c", "d"}},
		{"case insensitive", Query{FiatCurrency: "eur", Asset: "usdt"}, []string{"a", "b", "c", "d"}},
		{"other currency", Query{FiatCurrency: "USD"}, []string{"usd"}},
		{"window", Query{FiatCurrency: "EUR", Asset: "USDT", Range: date.NewRange(date.New(2025, time.January, 2), date.New(2025, time.January, 3))}, []string{"b", "c"}},
		{"open end", Query{FiatCurrency: "EUR", Asset: "USDT", Range: date.Range{From: date.New(2025, time.January, 3)}}, []string{"c", "d"}},
		{"open start", Query{FiatCurrency: "EUR", Asset: "USDT", Range: date.Range{To: date.New(2025, time.January, 1)}}, []string{"a"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for _, tr := range ledger.Select(tc.query) {
				got = append(got, tr.ID)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("Select() = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Select() = %v, want %v", got, tc.want)
					break
				}
			}
		})
	}

	if assets := ledger.Assets("EUR"); len(assets) != 2 || assets[0] != "USDT" || assets[1] != "BTC" {
		t.Errorf("Assets() = %v, want [USDT BTC]", assets)
	}
}
