package tradepnl

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/tradepnl/date"
	"github.com/shopspring/decimal"
)

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// ParseSide parses a side name, case insensitive.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown trade side %q", s)
	}
}

// Status is the lifecycle state of a trade. Only completed trades take part in
// profit computation.
type Status string

const (
	Completed Status = "COMPLETED"
	Pending   Status = "PENDING"
	Cancelled Status = "CANCELLED"
)

// Trade is one completed trade of an asset against a fiat currency.
//
// Trade is a value: the engine copies the caller's trades before working on
// them and never writes them back.
type Trade struct {
	ID           string
	Side         Side
	Status       Status
	Asset        string
	FiatCurrency string
	Amount       decimal.Decimal // quantity of asset
	Price        decimal.Decimal // fiat per unit of asset
	TotalFiat    decimal.Decimal // gross fiat value, trusted as given
	FeeFiat      decimal.Decimal
	CompletedAt  time.Time
}

// NewBuy returns a completed buy trade whose total is amount * price.
func NewBuy(on time.Time, asset, fiat string, amount, price decimal.Decimal) Trade {
	return newTrade(Buy, on, asset, fiat, amount, price)
}

// NewSell returns a completed sell trade whose total is amount * price.
func NewSell(on time.Time, asset, fiat string, amount, price decimal.Decimal) Trade {
	return newTrade(Sell, on, asset, fiat, amount, price)
}

func newTrade(side Side, on time.Time, asset, fiat string, amount, price decimal.Decimal) Trade {
	return Trade{
		Side:         side,
		Status:       Completed,
		Asset:        asset,
		FiatCurrency: fiat,
		Amount:       amount,
		Price:        price,
		TotalFiat:    amount.Mul(price),
		CompletedAt:  on,
	}
}

// WithFee returns a copy of t with the given fiat fee.
func (t Trade) WithFee(fee decimal.Decimal) Trade {
	t.FeeFiat = fee
	return t
}

// WithID returns a copy of t with the given identifier.
func (t Trade) WithID(id string) Trade {
	t.ID = id
	return t
}

// Day returns the calendar day the trade was completed on.
func (t Trade) Day() date.Date { return date.FromTime(t.CompletedAt) }

// IsCompleted reports whether the trade is completed. An unset status counts as completed.
func (t Trade) IsCompleted() bool { return t.Status == "" || t.Status == Completed }

// Validate checks the trade invariants and returns all the failures.
func (t Trade) Validate() error {
	var errs []error
	if t.Side != Buy && t.Side != Sell {
		errs = append(errs, fmt.Errorf("unknown side %q", t.Side))
	}
	if !t.Amount.IsPositive() {
		errs = append(errs, fmt.Errorf("amount must be positive, got %s", t.Amount))
	}
	if !t.Price.IsPositive() {
		errs = append(errs, fmt.Errorf("price must be positive, got %s", t.Price))
	}
	if !t.TotalFiat.IsPositive() {
		errs = append(errs, fmt.Errorf("total fiat must be positive, got %s", t.TotalFiat))
	}
	if t.FeeFiat.IsNegative() {
		errs = append(errs, fmt.Errorf("fee must not be negative, got %s", t.FeeFiat))
	}
	if t.CompletedAt.IsZero() {
		errs = append(errs, errors.New("missing completion time"))
	}
	return errors.Join(errs...)
}
