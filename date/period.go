package date

import (
	"fmt"
	"strings"
)

// Period is a calendar bucket size.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("period(%d)", int(p))
	}
}

// Name returns the singular noun for the period (e.g., "day", "week", "month").
func (p Period) Name() string {
	switch p {
	case Daily:
		return "day"
	case Weekly:
		return "week"
	case Monthly:
		return "month"
	case Quarterly:
		return "quarter"
	case Yearly:
		return "year"
	default:
		return "period"
	}
}

// Range returns the period range containing d.
func (p Period) Range(d Date) Range { return Range{From: d.StartOf(p), To: d.EndOf(p)} }

// ParsePeriod accepts both the adjective and the noun forms ("weekly", "week").
func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(strings.TrimSpace(p))
	switch p {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q", p)
	}
}
