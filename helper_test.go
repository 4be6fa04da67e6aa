package tradepnl

import (
	"time"
)

// jan returns noon UTC on the given day of January 2025. 2025-01-06 is a Monday.
func jan(day int) time.Time { return time.Date(2025, time.January, day, 12, 0, 0, 0, time.UTC) }

func buy(on time.Time, amount, price string) Trade {
	return NewBuy(on, "USDT", "EUR", D(amount), D(price))
}

func sell(on time.Time, amount, price string) Trade {
	return NewSell(on, "USDT", "EUR", D(amount), D(price))
}
