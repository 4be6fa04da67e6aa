package tradepnl

import "github.com/shopspring/decimal"

// Places is the number of decimal places of every value leaving the engine.
const Places = 2

// D is a convenient factory for decimal.Decimal.
func D[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | string | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	case string:
		return decimal.RequireFromString(v)
	default:
		panic("unsupported type")
	}
}

// round is the single rounding point of the engine.
func round(d decimal.Decimal) decimal.Decimal { return d.Round(Places) }

// ratio returns a/b, or zero when b is zero.
func ratio(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}
