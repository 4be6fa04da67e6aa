package tradepnl

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/etnz/tradepnl/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// point is the printable form of a Point.
type point struct {
	date, bucket                           string
	cumulative, profit, inventory, avgCost string
}

func points(s *Series) []point {
	var got []point
	for _, p := range s.Points {
		got = append(got, point{
			date:       p.Date.String(),
			bucket:     p.Bucket,
			cumulative: p.CumulativeProfit.String(),
			profit:     p.PeriodProfit.String(),
			inventory:  p.Inventory.String(),
			avgCost:    p.AvgCost.String(),
		})
	}
	return got
}

// weekTrades realizes 10, 15 and 15 on the first three days of 2025-W02 and
// buys on the Monday after.
func weekTrades() []Trade {
	later := func(day int) time.Time { return jan(day).Add(time.Hour) }
	return []Trade{
		buy(jan(6), "1", "100"), sell(later(6), "1", "110"),
		buy(jan(7), "1", "100"), sell(later(7), "1", "115"),
		buy(jan(8), "1", "100"), sell(later(8), "1", "115"),
		buy(jan(13), "2", "50"),
	}
}

func TestComputeSeries(t *testing.T) {
	feb3 := time.Date(2025, time.February, 3, 9, 0, 0, 0, time.UTC)
	twoMonths := []Trade{
		buy(jan(30), "1", "10"), sell(jan(30).Add(time.Hour), "1", "12"),
		buy(feb3, "1", "10"), sell(feb3.Add(time.Hour), "1", "13"),
	}

	testCases := []struct {
		name   string
		trades []Trade
		period date.Period
		want   []point
	}{
		{
			name:   "daily",
			trades: weekTrades(),
			period: date.Daily,
			want: []point{
				{"2025-01-06", "2025-01-06", "10", "10", "0", "0"},
				{"2025-01-07", "2025-01-07", "25", "15", "0", "0"},
				{"2025-01-08", "2025-01-08", "40", "15", "0", "0"},
				{"2025-01-13", "2025-01-13", "40", "0", "2", "50"},
			},
		},
		{
			name:   "weekly carry forward",
			trades: weekTrades(),
			period: date.Weekly,
			want: []point{
				{"2025-01-06", "2025-W02", "40", "40", "0", "0"},
				{"2025-01-13", "2025-W03", "40", "0", "2", "50"},
			},
		},
		{
			name:   "monthly",
			trades: twoMonths,
			period: date.Monthly,
			want: []point{
				{"2025-01-01", "2025-01", "2", "2", "0", "0"},
				{"2025-02-01", "2025-02", "5", "3", "0", "0"},
			},
		},
		{
			name:   "quarterly",
			trades: twoMonths,
			period: date.Quarterly,
			want:   []point{{"2025-01-01", "2025-Q1", "5", "5", "0", "0"}},
		},
		{
			name:   "yearly",
			trades: twoMonths,
			period: date.Yearly,
			want:   []point{{"2025-01-01", "2025", "5", "5", "0", "0"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeSeries(tc.trades, FIFO, "EUR", tc.period)
			require.NoError(t, err)
			assert.Equal(t, tc.want, points(got))
			assert.Equal(t, "USDT", got.Asset)
			assert.Equal(t, tc.period, got.Period)
		})
	}
}

func TestComputeSeries_Inventory(t *testing.T) {
	trades := []Trade{buy(jan(1), "10", "10"), sell(jan(2), "4", "15"), sell(jan(3), "4", "12")}

	t.Run("isolated days", func(t *testing.T) {
		got, err := ComputeSeries(trades, FIFO, "EUR", date.Daily)
		require.NoError(t, err)
		// Each day alone has no lot to match the sells against, but the
		// inventory runs across days.
		assert.Equal(t, []point{
			{"2025-01-01", "2025-01-01", "0", "0", "10", "10"},
			{"2025-01-02", "2025-01-02", "0", "0", "6", "10"},
			{"2025-01-03", "2025-01-03", "0", "0", "2", "10"},
		}, points(got))
	})

	t.Run("carried inventory", func(t *testing.T) {
		got, err := ComputeSeries(trades, FIFO, "EUR", date.Daily, WithCarriedInventory())
		require.NoError(t, err)
		assert.Equal(t, []point{
			{"2025-01-01", "2025-01-01", "0", "0", "10", "10"},
			{"2025-01-02", "2025-01-02", "20", "20", "6", "10"},
			{"2025-01-03", "2025-01-03", "28", "8", "2", "10"},
		}, points(got))

		summary, err := ComputeRealizedProfit(trades, FIFO, "EUR")
		require.NoError(t, err)
		last := got.Points[len(got.Points)-1]
		assert.True(t, summary.RealizedProfit.Equal(last.CumulativeProfit))
		assert.True(t, summary.InventoryRemaining.Equal(last.Inventory))
	})

	t.Run("average cost", func(t *testing.T) {
		avg := []Trade{buy(jan(1), "10", "10"), buy(jan(2), "10", "20"), sell(jan(3), "5", "20")}
		got, err := ComputeSeries(avg, Average, "EUR", date.Daily, WithCarriedInventory())
		require.NoError(t, err)
		assert.Equal(t, []point{
			{"2025-01-01", "2025-01-01", "0", "0", "10", "10"},
			{"2025-01-02", "2025-01-02", "0", "0", "20", "15"},
			{"2025-01-03", "2025-01-03", "25", "25", "15", "15"},
		}, points(got))
	})
}

func TestComputeSeries_InvalidArgument(t *testing.T) {
	_, err := ComputeSeries(nil, FIFO, "EUR", date.Period(12))
	assert.ErrorIs(t, err, ErrInvalidPeriod)
	_, err = ComputeSeries(nil, Method(0), "EUR", date.Daily)
	assert.ErrorIs(t, err, ErrInvalidMethod)
	_, err = ComputeSeries(nil, FIFO, "", date.Daily)
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestSeries_MarshalJSON(t *testing.T) {
	empty, err := ComputeSeries(nil, Average, "EUR", date.Weekly)
	require.NoError(t, err)
	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"method":"AVERAGE","fiatCurrency":"EUR","period":"weekly","points":[]}`, string(data))

	week, err := ComputeSeries(weekTrades(), FIFO, "EUR", date.Weekly)
	require.NoError(t, err)
	data, err = json.Marshal(week.Points[1])
	require.NoError(t, err)
	assert.Equal(t, `{"date":"2025-01-13","bucket":"2025-W03","cumulativeProfit":40.00,"periodProfit":0.00,"inventory":2.00,"avgCost":50.00}`, string(data))

	// within a series the profit is named after the period
	data, err = json.Marshal(week)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"bucket":"2025-W03","cumulativeProfit":40.00,"weeklyProfit":0.00,`)
	assert.NotContains(t, string(data), "periodProfit")

	daily, err := ComputeSeries(weekTrades(), FIFO, "EUR", date.Daily)
	require.NoError(t, err)
	data, err = json.Marshal(daily)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dailyProfit":`)
}
