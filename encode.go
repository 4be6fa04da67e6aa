package tradepnl

import (
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// fixed renders d with exactly [Places] decimal places, as a JSON number.
type fixed decimal.Decimal

func (f fixed) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(f).StringFixed(Places)), nil
}

func (s SkippedTrade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("index", s.Index)
	w.Optional("id", s.ID)
	w.Append("reason", s.Reason)
	return w.MarshalJSON()
}

// MarshalJSON encodes the summary with a stable field order.
func (s *Summary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("method", s.Method)
	w.Append("fiatCurrency", s.FiatCurrency)
	w.Optional("asset", s.Asset)
	w.Append("realizedProfitFiat", fixed(s.RealizedProfit))
	w.Append("totalBuyFiat", fixed(s.TotalBuyFiat))
	w.Append("totalSellFiat", fixed(s.TotalSellFiat))
	w.Append("totalBuyAmount", fixed(s.TotalBuyAmount))
	w.Append("totalSellAmount", fixed(s.TotalSellAmount))
	w.Append("avgBuyPrice", fixed(s.AvgBuyPrice))
	w.Append("avgSellPrice", fixed(s.AvgSellPrice))
	w.Append("inventoryRemaining", fixed(s.InventoryRemaining))
	w.Append("totalFeesFiat", fixed(s.TotalFees))
	w.Append("unmatchedSellAmount", fixed(s.UnmatchedSellAmount))
	w.Append("trades", s.Trades)
	w.Optional("skipped", s.Skipped)
	return w.MarshalJSON()
}

// MarshalJSON encodes a point on its own, its profit is "periodProfit". Within
// a Series the profit is named after the period, e.g. "dailyProfit".
func (p Point) MarshalJSON() ([]byte, error) { return p.marshalJSON("periodProfit") }

func (p Point) marshalJSON(profitKey string) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", p.Date)
	w.Append("bucket", p.Bucket)
	w.Append("cumulativeProfit", fixed(p.CumulativeProfit))
	w.Append(profitKey, fixed(p.PeriodProfit))
	w.Append("inventory", fixed(p.Inventory))
	w.Append("avgCost", fixed(p.AvgCost))
	return w.MarshalJSON()
}

func (s *Series) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("method", s.Method)
	w.Append("fiatCurrency", s.FiatCurrency)
	w.Optional("asset", s.Asset)
	w.Append("period", s.Period.String())
	key := s.Period.String() + "Profit"
	points := make([]seriesPoint, len(s.Points))
	for i, p := range s.Points {
		points[i] = seriesPoint{Point: p, key: key}
	}
	w.Append("points", points)
	w.Optional("skipped", s.Skipped)
	return w.MarshalJSON()
}

// seriesPoint is a Point encoded with its profit named after the series period.
type seriesPoint struct {
	Point
	key string
}

func (p seriesPoint) MarshalJSON() ([]byte, error) { return p.Point.marshalJSON(p.key) }
