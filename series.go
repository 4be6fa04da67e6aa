package tradepnl

import (
	"fmt"

	"github.com/etnz/tradepnl/date"
	"github.com/shopspring/decimal"
)

// Point is one bucket of a profit Series.
type Point struct {
	Date             date.Date // first day of the bucket
	Bucket           string    // bucket identifier, e.g. 2025-01-15, 2025-W03, 2025-01
	CumulativeProfit decimal.Decimal
	PeriodProfit     decimal.Decimal // profit realized within the bucket
	Inventory        decimal.Decimal // held amount at the end of the bucket
	AvgCost          decimal.Decimal // unit cost of the held amount at the end of the bucket
}

// Series is a realized profit time series, ordered by bucket.
type Series struct {
	Method       Method
	FiatCurrency string
	Asset        string
	Period       date.Period
	Points       []Point
	Skipped      []SkippedTrade
}

type seriesConfig struct {
	carry bool
}

// SeriesOption customizes ComputeSeries.
type SeriesOption func(*seriesConfig)

// WithCarriedInventory makes each day's profit the profit realized that day by
// the continuous run over the whole sequence, so that a sell is matched against
// lots bought on previous days.
//
// By default a day's profit is computed from that day's trades only.
func WithCarriedInventory() SeriesOption {
	return func(c *seriesConfig) { c.carry = true }
}

// ComputeSeries computes the realized profit of trades per calendar day, then
// rolls the days up into buckets of the given period.
//
// Inventory and average cost are running state across the whole sequence, they
// are never reset per bucket. When rolling up, period profits are summed while
// cumulative profit, inventory and average cost take the value of the last day
// of the bucket.
func ComputeSeries(trades []Trade, method Method, fiatCurrency string, period date.Period, opts ...SeriesOption) (*Series, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMethod, method)
	}
	currency, err := ValidateCurrency(fiatCurrency)
	if err != nil {
		return nil, err
	}
	if period < date.Daily || period > date.Yearly {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}
	var cfg seriesConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	work, asset, skipped := prepare(trades, currency)
	points := dailyPoints(work, method, cfg)
	if period != date.Daily {
		points = rollup(points, period)
	}
	return &Series{
		Method:       method,
		FiatCurrency: currency,
		Asset:        asset,
		Period:       period,
		Points:       points,
		Skipped:      skipped,
	}, nil
}

// dailyPoints walks the sorted trades one day at a time.
func dailyPoints(work []Trade, method Method, cfg seriesConfig) []Point {
	var points []Point
	continuous := newRun(method)
	cumulative := decimal.Zero

	for start := 0; start < len(work); {
		day := work[start].Day()
		end := start
		for end < len(work) && work[end].Day() == day {
			end++
		}

		var profit decimal.Decimal
		if cfg.carry {
			before := continuous.acc.realized()
			for _, t := range work[start:end] {
				continuous.apply(t)
			}
			profit = round(continuous.acc.realized().Sub(before))
		} else {
			isolated := newRun(method)
			for _, t := range work[start:end] {
				isolated.apply(t)
				continuous.apply(t)
			}
			profit = round(isolated.acc.realized())
		}

		cumulative = cumulative.Add(profit)
		points = append(points, Point{
			Date:             day,
			Bucket:           day.String(),
			CumulativeProfit: cumulative,
			PeriodProfit:     profit,
			Inventory:        round(continuous.acc.inventory()),
			AvgCost:          round(continuous.acc.avgCost()),
		})
		start = end
	}
	return points
}

// rollup merges daily points into period buckets, last value wins except for
// the period profit that is summed.
func rollup(daily []Point, period date.Period) []Point {
	var points []Point
	var current date.Range
	for _, p := range daily {
		r := period.Range(p.Date)
		if len(points) == 0 || r != current {
			current = r
			points = append(points, Point{
				Date:   r.From,
				Bucket: r.Identifier(),
			})
		}
		last := &points[len(points)-1]
		last.PeriodProfit = last.PeriodProfit.Add(p.PeriodProfit)
		last.CumulativeProfit = p.CumulativeProfit
		last.Inventory = p.Inventory
		last.AvgCost = p.AvgCost
	}
	return points
}
