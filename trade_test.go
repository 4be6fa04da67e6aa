package tradepnl

import (
	"strings"
	"testing"
	"time"
)

func TestTrade_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Trade)
		want   []string // expected error fragments, none for a valid trade
	}{
		{"valid", func(*Trade) {}, nil},
		{"zero amount", func(tr *Trade) { tr.Amount = D(0) }, []string{"amount"}},
		{"negative price", func(tr *Trade) { tr.Price = D(-1) }, []string{"price"}},
		{"zero total", func(tr *Trade) { tr.TotalFiat = D(0) }, []string{"total fiat"}},
		{"negative fee", func(tr *Trade) { tr.FeeFiat = D("-0.01") }, []string{"fee"}},
		{"no time", func(tr *Trade) { tr.CompletedAt = time.Time{} }, []string{"completion time"}},
		{"everything", func(tr *Trade) {
			tr.Side = "HOLD"
			tr.Amount = D(0)
			tr.Price = D(0)
		}, []string{"side", "amount", "price"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr := validTrade()
			tc.modify(&tr)
			err := tr.Validate()
			if len(tc.want) == 0 {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want errors about %v", tc.want)
			}
			for _, w := range tc.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("Validate() = %q, want it to mention %q", err, w)
				}
			}
		})
	}
}

func TestTrade_Day(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	// 23:30 UTC on the 1st is already the 2nd in Paris.
	tr := buy(time.Date(2025, time.January, 1, 23, 30, 0, 0, time.UTC).In(paris), "1", "1")
	if got := tr.Day().String(); got != "2025-01-02" {
		t.Errorf("Day() = %s, want 2025-01-02", got)
	}
	if !tr.IsCompleted() {
		t.Error("new trades are completed")
	}
	if got := validTrade().TotalFiat.String(); got != "6" {
		t.Errorf("TotalFiat = %s, want 6", got)
	}
}

func validTrade() Trade { return buy(jan(1), "2", "3") }
