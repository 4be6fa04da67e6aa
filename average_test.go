package tradepnl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageAccumulator(t *testing.T) {
	testCases := []struct {
		name      string
		trades    []Trade
		profit    string
		inventory string
		avgCost   string
	}{
		{
			name:      "weighted on every buy",
			trades:    []Trade{buy(jan(1), "10", "10"), buy(jan(2), "10", "20")},
			profit:    "0",
			inventory: "20",
			avgCost:   "15",
		},
		{
			name:      "buy after a sell uses the running buy fiat",
			trades:    []Trade{buy(jan(1), "10", "10"), sell(jan(2), "5", "20"), buy(jan(3), "5", "15")},
			profit:    "50",
			inventory: "10",
			avgCost:   "17.5",
		},
		{
			name:      "second sell pays the excess buy fiat",
			trades:    []Trade{buy(jan(1), "10", "10"), buy(jan(2), "10", "20"), sell(jan(3), "5", "20"), sell(jan(4), "5", "20")},
			profit:    "25",
			inventory: "10",
			avgCost:   "15",
		},
		{
			name:      "buy closing a short restarts the average",
			trades:    []Trade{buy(jan(1), "1", "10"), sell(jan(2), "3", "20"), buy(jan(3), "2", "12")},
			profit:    "30",
			inventory: "0",
			avgCost:   "0",
		},
		{
			name:      "flat inventory has no average cost",
			trades:    []Trade{buy(jan(1), "2", "10"), sell(jan(2), "2", "11")},
			profit:    "2",
			inventory: "0",
			avgCost:   "0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var a averageAccumulator
			for _, tr := range tc.trades {
				if tr.Side == Buy {
					a.buy(tr)
				} else {
					a.sell(tr)
				}
			}
			assert.Equal(t, tc.profit, round(a.realized()).String(), "profit")
			assert.Equal(t, tc.inventory, round(a.inventory()).String(), "inventory")
			assert.Equal(t, tc.avgCost, round(a.avgCost()).String(), "avgCost")
		})
	}
}
