package tradepnl

import (
	"slices"
	"strings"

	"github.com/etnz/tradepnl/date"
)

// Ledger is an in-memory list of trades, kept sorted by completion time.
type Ledger struct {
	trades   []Trade
	rejected []Rejected
}

// Rejected is a ledger record that could not be turned into a trade.
type Rejected struct {
	Line   int    // 1-based line or record number
	Text   string // raw record
	Reason string
}

// Query selects the trades handed to the engine.
type Query struct {
	FiatCurrency string
	Asset        string     // optional
	Range        date.Range // inclusive, zero bounds are open
}

// Match reports whether t is a completed trade selected by q.
func (q Query) Match(t Trade) bool {
	if !t.IsCompleted() {
		return false
	}
	if !strings.EqualFold(t.FiatCurrency, q.FiatCurrency) {
		return false
	}
	if q.Asset != "" && !strings.EqualFold(t.Asset, q.Asset) {
		return false
	}
	return q.Range.Contains(t.Day())
}

// NewLedger creates a new empty ledger.
func NewLedger() *Ledger { return &Ledger{} }

// Append adds trades to the ledger, keeping it sorted. Trades completed at the
// same instant keep their insertion order.
func (l *Ledger) Append(trades ...Trade) {
	l.trades = append(l.trades, trades...)
	l.stableSort()
}

func (l *Ledger) stableSort() {
	slices.SortStableFunc(l.trades, func(a, b Trade) int { return a.CompletedAt.Compare(b.CompletedAt) })
}

// Len returns the number of trades.
func (l *Ledger) Len() int { return len(l.trades) }

// Trades returns a copy of all the trades, sorted.
func (l *Ledger) Trades() []Trade { return slices.Clone(l.trades) }

// Rejected returns the records that could not be decoded.
func (l *Ledger) Rejected() []Rejected { return slices.Clone(l.rejected) }

// Select returns the completed trades matching q, sorted by completion time.
func (l *Ledger) Select(q Query) []Trade {
	var selected []Trade
	for _, t := range l.trades {
		if q.Match(t) {
			selected = append(selected, t)
		}
	}
	return selected
}

// Assets returns the distinct assets traded against currency, in order of appearance.
func (l *Ledger) Assets(currency string) []string {
	var assets []string
	for _, t := range l.trades {
		if !strings.EqualFold(t.FiatCurrency, currency) {
			continue
		}
		if !slices.Contains(assets, t.Asset) {
			assets = append(assets, t.Asset)
		}
	}
	return assets
}
