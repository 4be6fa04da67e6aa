package tradepnl

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Summary is the realized profit of a trade sequence for one (currency, asset) pair.
//
// Every numeric field is rounded to [Places] decimal places.
type Summary struct {
	Method       Method
	FiatCurrency string
	Asset        string

	RealizedProfit     decimal.Decimal
	TotalBuyFiat       decimal.Decimal
	TotalSellFiat      decimal.Decimal
	TotalBuyAmount     decimal.Decimal
	TotalSellAmount    decimal.Decimal
	AvgBuyPrice        decimal.Decimal
	AvgSellPrice       decimal.Decimal
	InventoryRemaining decimal.Decimal // negative under Average when oversold
	TotalFees          decimal.Decimal

	// UnmatchedSellAmount is the sell volume that found no inventory: left out
	// of profit under FIFO, the short position under Average.
	UnmatchedSellAmount decimal.Decimal

	Trades  int            // number of trades used
	Skipped []SkippedTrade // trades excluded from the computation
}

// SkippedTrade tells which input trade was left out and why.
type SkippedTrade struct {
	Index  int // position in the caller's sequence
	ID     string
	Reason string
}

// accountant is the per-method matching strategy.
type accountant interface {
	buy(Trade)
	sell(Trade)
	realized() decimal.Decimal
	inventory() decimal.Decimal
	avgCost() decimal.Decimal
	unmatchedAmount() decimal.Decimal
}

func newAccountant(method Method) accountant {
	if method == Average {
		return &averageAccumulator{}
	}
	return &fifoMatcher{}
}

// run holds the state of one computation. It is never shared.
type run struct {
	method Method
	acc    accountant
	trades int

	buyFiat, sellFiat     decimal.Decimal
	buyAmount, sellAmount decimal.Decimal
	fees                  decimal.Decimal
}

func newRun(method Method) *run {
	return &run{method: method, acc: newAccountant(method)}
}

// apply processes one valid trade. Totals do not depend on the method.
func (r *run) apply(t Trade) {
	r.trades++
	r.fees = r.fees.Add(t.FeeFiat)
	switch t.Side {
	case Buy:
		r.buyFiat = r.buyFiat.Add(t.TotalFiat)
		r.buyAmount = r.buyAmount.Add(t.Amount)
		r.acc.buy(t)
	case Sell:
		r.sellFiat = r.sellFiat.Add(t.TotalFiat)
		r.sellAmount = r.sellAmount.Add(t.Amount)
		r.acc.sell(t)
	}
}

// summary rounds the run state into a Summary.
func (r *run) summary(currency, asset string, skipped []SkippedTrade) *Summary {
	return &Summary{
		Method:              r.method,
		FiatCurrency:        currency,
		Asset:               asset,
		RealizedProfit:      round(r.acc.realized()),
		TotalBuyFiat:        round(r.buyFiat),
		TotalSellFiat:       round(r.sellFiat),
		TotalBuyAmount:      round(r.buyAmount),
		TotalSellAmount:     round(r.sellAmount),
		AvgBuyPrice:         round(ratio(r.buyFiat, r.buyAmount)),
		AvgSellPrice:        round(ratio(r.sellFiat, r.sellAmount)),
		InventoryRemaining:  round(r.acc.inventory()),
		TotalFees:           round(r.fees),
		UnmatchedSellAmount: round(r.acc.unmatchedAmount()),
		Trades:              r.trades,
		Skipped:             skipped,
	}
}

// ComputeRealizedProfit computes the realized profit of trades, sorted by
// completion time, using method.
//
// The method and currency are checked before anything else: an invalid one
// fails the call with an error wrapping [ErrInvalidArgument]. Malformed trades,
// trades of another currency or of another asset than the first valid trade
// are not fatal: they are listed in [Summary.Skipped].
//
// It has no side effect and is safe for concurrent use.
func ComputeRealizedProfit(trades []Trade, method Method, fiatCurrency string) (*Summary, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMethod, method)
	}
	currency, err := ValidateCurrency(fiatCurrency)
	if err != nil {
		return nil, err
	}

	work, asset, skipped := prepare(trades, currency)
	r := newRun(method)
	for _, t := range work {
		r.apply(t)
	}
	return r.summary(currency, asset, skipped), nil
}

// prepare returns a private, time sorted copy of the usable trades, the asset
// they are about, and the ones left out.
func prepare(trades []Trade, currency string) (work []Trade, asset string, skipped []SkippedTrade) {
	work = make([]Trade, 0, len(trades))
	skip := func(i int, t Trade, format string, args ...any) {
		skipped = append(skipped, SkippedTrade{Index: i, ID: t.ID, Reason: fmt.Sprintf(format, args...)})
	}

	for i, t := range trades {
		if err := t.Validate(); err != nil {
			skip(i, t, "malformed: %v", strings.ReplaceAll(err.Error(), "\n", "; "))
			continue
		}
		if !t.IsCompleted() {
			skip(i, t, "status %s", t.Status)
			continue
		}
		if !strings.EqualFold(t.FiatCurrency, currency) {
			skip(i, t, "currency %s, want %s", t.FiatCurrency, currency)
			continue
		}
		if asset == "" {
			asset = t.Asset
		}
		if !strings.EqualFold(t.Asset, asset) {
			skip(i, t, "asset %s, want %s", t.Asset, asset)
			continue
		}
		work = append(work, t)
	}

	// Input is expected sorted already; a stable sort keeps equal timestamps in
	// arrival order.
	slices.SortStableFunc(work, func(a, b Trade) int { return a.CompletedAt.Compare(b.CompletedAt) })
	return work, asset, skipped
}
