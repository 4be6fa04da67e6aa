package date

import (
	"fmt"
	"time"
)

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains return true date is included in the range (boundaries included).
// A zero boundary is open.
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

// Period returns the period of this range if it's a standard one.
func (r Range) Period() (p Period, ok bool) {
	switch {
	case r.From == r.To:
		return Daily, true
	case r.From.Weekday() == time.Monday && r.From.EndOf(Weekly) == r.To:
		return Weekly, true
	case r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To:
		return Monthly, true
	case r.From.StartOf(Quarterly) == r.From && r.From.EndOf(Quarterly) == r.To:
		return Quarterly, true
	case r.From.StartOf(Yearly) == r.From && r.From.EndOf(Yearly) == r.To:
		return Yearly, true
	default:
		return Daily, false
	}
}

// Identifier compute a unique identifier for the Range.
// If the period is defined, use a short insighful name
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}

	switch p {
	case Daily:
		return r.From.String()
	case Weekly:
		year, week := r.From.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case Yearly:
		return r.From.Format("2006")
	default:
		panic("unknown period")
	}
}
