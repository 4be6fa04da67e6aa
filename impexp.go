package tradepnl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// this file contains the import of exchange JSON exports. Exports differ from
// one exchange to the other, a mapping of JSONPath expressions tells where each
// trade field is.

// ImportMapping describes how to find trades in a JSON document.
//
// Records is evaluated against the whole document and must yield the list of
// trade records. Every other path is evaluated against a single record. An
// empty path leaves the field unset.
type ImportMapping struct {
	Records      string `mapstructure:"records"`
	ID           string `mapstructure:"id"`
	Side         string `mapstructure:"side"`
	Status       string `mapstructure:"status"`
	Asset        string `mapstructure:"asset"`
	FiatCurrency string `mapstructure:"fiat"`
	Amount       string `mapstructure:"amount"`
	Price        string `mapstructure:"price"`
	TotalFiat    string `mapstructure:"total"`
	Fee          string `mapstructure:"fee"`
	CompletedAt  string `mapstructure:"completed_at"`

	// BuyValues and SellValues list the raw side values, case insensitive.
	// When empty "BUY" and "SELL" are expected.
	BuyValues  []string `mapstructure:"buy_values"`
	SellValues []string `mapstructure:"sell_values"`
	// CompletedValues list the raw status values meaning completed. When empty
	// "COMPLETED" is expected.
	CompletedValues []string `mapstructure:"completed_values"`

	// TimeLayout is "unixms", "unix" or a Go time layout. Defaults to RFC 3339.
	TimeLayout string `mapstructure:"time_layout"`

	DefaultAsset        string `mapstructure:"default_asset"`
	DefaultFiatCurrency string `mapstructure:"default_fiat"`
}

// BinanceP2P maps the order history of the Binance P2P API.
var BinanceP2P = ImportMapping{
	Records:         "$.data[*]",
	ID:              "$.orderNumber",
	Side:            "$.tradeType",
	Status:          "$.orderStatus",
	Asset:           "$.asset",
	FiatCurrency:    "$.fiat",
	Amount:          "$.amount",
	Price:           "$.unitPrice",
	TotalFiat:       "$.totalPrice",
	CompletedAt:     "$.createTime",
	CompletedValues: []string{"COMPLETED"},
	TimeLayout:      "unixms",
}

// Mappings returns the builtin mappings by name.
func Mappings() map[string]ImportMapping {
	return map[string]ImportMapping{
		"binance-p2p": BinanceP2P,
	}
}

// ImportJSON reads a JSON document from r and extracts its trades using m.
//
// Records that cannot be turned into a trade are returned as rejected, with
// their position in the record list. An error is returned only if the document
// cannot be read or the records cannot be located.
func ImportJSON(r io.Reader, m ImportMapping) ([]Trade, []Rejected, error) {
	if m.Records == "" {
		return nil, nil, fmt.Errorf("%w: mapping without records path", ErrInvalidArgument)
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("cannot parse json document: %w", err)
	}

	records, err := locateRecords(m.Records, doc)
	if err != nil {
		return nil, nil, err
	}

	var trades []Trade
	var rejected []Rejected
	for i, record := range records {
		t, err := m.trade(record)
		if err != nil {
			text, _ := json.Marshal(record)
			rejected = append(rejected, Rejected{Line: i + 1, Text: string(text), Reason: err.Error()})
			continue
		}
		trades = append(trades, t)
	}
	return trades, rejected, nil
}

func (m ImportMapping) trade(record any) (Trade, error) {
	var errs []error
	str := func(name, path, def string) string {
		if path == "" {
			return def
		}
		v, err := jsonpath.Get(path, record)
		if err != nil || v == nil {
			if def != "" {
				return def
			}
			errs = append(errs, fmt.Errorf("missing %s", name))
			return ""
		}
		return fmt.Sprint(v)
	}
	num := func(name, path string, required bool) decimal.Decimal {
		if path == "" {
			if required {
				errs = append(errs, fmt.Errorf("no path for %s", name))
			}
			return decimal.Zero
		}
		v, err := jsonpath.Get(path, record)
		if err != nil || v == nil {
			if required {
				errs = append(errs, fmt.Errorf("missing %s", name))
			}
			return decimal.Zero
		}
		d, err := decimal.NewFromString(strings.TrimSpace(fmt.Sprint(v)))
		if err != nil {
			errs = append(errs, fmt.Errorf("non numeric %s %q", name, fmt.Sprint(v)))
		}
		return d
	}

	t := Trade{
		ID:           str("id", m.ID, ""),
		Asset:        str("asset", m.Asset, m.DefaultAsset),
		FiatCurrency: strings.ToUpper(str("fiat", m.FiatCurrency, m.DefaultFiatCurrency)),
		Amount:       num("amount", m.Amount, true),
		Price:        num("price", m.Price, true),
		TotalFiat:    num("total", m.TotalFiat, true),
		FeeFiat:      num("fee", m.Fee, false),
		Status:       Completed,
	}

	side := str("side", m.Side, "")
	switch {
	case matchAny(side, m.BuyValues, string(Buy)):
		t.Side = Buy
	case matchAny(side, m.SellValues, string(Sell)):
		t.Side = Sell
	default:
		errs = append(errs, fmt.Errorf("unknown trade side %q", side))
	}

	if m.Status != "" {
		status := str("status", m.Status, "")
		if !matchAny(status, m.CompletedValues, string(Completed)) {
			t.Status = Status(strings.ToUpper(status))
		}
	}

	at, err := parseTime(str("completed_at", m.CompletedAt, ""), m.TimeLayout)
	if err != nil {
		errs = append(errs, err)
	}
	t.CompletedAt = at

	if err := errors.Join(errs...); err != nil {
		return Trade{}, err
	}
	return t, nil
}

// locateRecords evaluates the records path against doc. A wildcard over a
// missing value yields an empty list, so the path it applies to must resolve too.
func locateRecords(path string, doc any) ([]any, error) {
	if parent, ok := strings.CutSuffix(path, "[*]"); ok && parent != "$" {
		if _, err := jsonpath.Get(parent, doc); err != nil {
			return nil, fmt.Errorf("cannot locate records %q: %w", path, err)
		}
	}
	found, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot locate records %q: %w", path, err)
	}
	records, ok := found.([]any)
	if !ok {
		return nil, fmt.Errorf("records %q is a %T, want a list", path, found)
	}
	return records, nil
}

// matchAny reports whether v is one of values, or def when values is empty.
func matchAny(v string, values []string, def string) bool {
	if len(values) == 0 {
		values = []string{def}
	}
	for _, value := range values {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// parseTime converts a raw time value according to layout.
func parseTime(v, layout string) (time.Time, error) {
	if v == "" {
		return time.Time{}, errors.New("missing completion time")
	}
	switch layout {
	case "unixms", "unix":
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid %s time %q", layout, v)
		}
		if layout == "unixms" {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	case "":
		layout = time.RFC3339Nano
	}
	t, err := time.Parse(layout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid completion time %q: %w", v, err)
	}
	return t, nil
}
