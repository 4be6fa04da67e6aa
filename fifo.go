package tradepnl

import "github.com/shopspring/decimal"

// fifoMatcher realizes profit by matching sells against the oldest open lots.
type fifoMatcher struct {
	lots      lotQueue
	profit    decimal.Decimal
	unmatched decimal.Decimal // sell amount found no lot to match
}

func (m *fifoMatcher) buy(t Trade) {
	m.lots.push(lot{
		remaining: t.Amount,
		unitPrice: t.Price,
		fee:       t.FeeFiat,
		original:  t.Amount,
	})
}

// sell consumes lots from the head of the queue, never reordering them.
//
// When the queue runs dry the rest of the sell stays unmatched: it realizes
// nothing, and neither does its share of the sell fee.
func (m *fifoMatcher) sell(t Trade) {
	rest := t.Amount
	for rest.IsPositive() && !m.lots.empty() {
		head := m.lots.front()
		consumed := decimal.Min(rest, head.remaining)

		gross := t.Price.Sub(head.unitPrice).Mul(consumed)
		buyFee := head.fee.Mul(consumed).Div(head.original)
		sellFee := t.FeeFiat.Mul(consumed).Div(t.Amount)
		m.profit = m.profit.Add(gross.Sub(buyFee).Sub(sellFee))

		head.remaining = head.remaining.Sub(consumed)
		rest = rest.Sub(consumed)
		if !head.remaining.IsPositive() {
			m.lots.pop()
		}
	}
	if rest.IsPositive() {
		m.unmatched = m.unmatched.Add(rest)
	}
}

func (m *fifoMatcher) realized() decimal.Decimal        { return m.profit }
func (m *fifoMatcher) inventory() decimal.Decimal       { return m.lots.remaining() }
func (m *fifoMatcher) avgCost() decimal.Decimal         { return m.lots.unitCost() }
func (m *fifoMatcher) unmatchedAmount() decimal.Decimal { return m.unmatched }
