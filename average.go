package tradepnl

import "github.com/shopspring/decimal"

// averageAccumulator realizes profit against a single weighted average cost.
//
// buyFiat and buyAmount are the running buy sums. buyFiat is the total fiat
// paid, fees included, and is never reduced by a sell; buyAmount is reduced by
// every sell and may go negative.
type averageAccumulator struct {
	wac       decimal.Decimal // weighted average unit cost
	buyFiat   decimal.Decimal
	buyAmount decimal.Decimal
	profit    decimal.Decimal
}

// buy updates the average from the running sums before adding the trade to them.
func (a *averageAccumulator) buy(t Trade) {
	next := a.buyAmount.Add(t.Amount)
	if next.IsZero() {
		// a buy that exactly closes a short position: restart from its own price.
		a.wac = t.TotalFiat.Div(t.Amount)
	} else {
		a.wac = a.buyFiat.Add(t.TotalFiat).Div(next)
	}
	a.buyFiat = a.buyFiat.Add(t.TotalFiat).Add(t.FeeFiat)
	a.buyAmount = next
}

// sell realizes (price-wac)*amount minus its own fee and its share of the
// buy fiat in excess of buyAmount*wac.
func (a *averageAccumulator) sell(t Trade) {
	gross := t.Price.Sub(a.wac).Mul(t.Amount)
	excess := decimal.Zero
	if a.buyAmount.IsPositive() {
		excess = t.Amount.Mul(a.buyFiat.Sub(a.buyAmount.Mul(a.wac))).Div(a.buyAmount)
	}
	a.profit = a.profit.Add(gross.Sub(t.FeeFiat).Sub(excess))
	a.buyAmount = a.buyAmount.Sub(t.Amount)
}

func (a *averageAccumulator) realized() decimal.Decimal  { return a.profit }
func (a *averageAccumulator) inventory() decimal.Decimal { return a.buyAmount }

func (a *averageAccumulator) avgCost() decimal.Decimal {
	if a.buyAmount.IsZero() {
		return decimal.Zero
	}
	return a.wac
}

// unmatchedAmount is the oversold amount.
func (a *averageAccumulator) unmatchedAmount() decimal.Decimal {
	if a.buyAmount.IsNegative() {
		return a.buyAmount.Neg()
	}
	return decimal.Zero
}
