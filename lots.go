package tradepnl

import (
	"github.com/shopspring/decimal"
)

// lot is a buy still (partially) open for matching.
type lot struct {
	remaining decimal.Decimal
	unitPrice decimal.Decimal
	fee       decimal.Decimal // fee paid for the original amount
	original  decimal.Decimal
}

// lotQueue is a FIFO of lots backed by a slice and a head index.
//
// It lives for one engine invocation only.
type lotQueue struct {
	lots []lot
	head int
}

func (q *lotQueue) push(l lot) { q.lots = append(q.lots, l) }

func (q *lotQueue) empty() bool { return q.head >= len(q.lots) }

// front returns the oldest open lot. The queue must not be empty.
func (q *lotQueue) front() *lot { return &q.lots[q.head] }

// pop removes the oldest lot.
func (q *lotQueue) pop() {
	q.lots[q.head] = lot{}
	q.head++
	if q.empty() {
		// Everything consumed, reuse the backing array from the start.
		q.lots, q.head = q.lots[:0], 0
	}
}

// open returns the open lots, oldest first.
func (q *lotQueue) open() []lot { return q.lots[q.head:] }

// remaining is the total amount still open.
func (q *lotQueue) remaining() decimal.Decimal {
	total := decimal.Zero
	for _, l := range q.open() {
		total = total.Add(l.remaining)
	}
	return total
}

// unitCost is the weighted unit price of the open amount.
func (q *lotQueue) unitCost() decimal.Decimal {
	amount, cost := decimal.Zero, decimal.Zero
	for _, l := range q.open() {
		amount = amount.Add(l.remaining)
		cost = cost.Add(l.remaining.Mul(l.unitPrice))
	}
	return ratio(cost, amount)
}
