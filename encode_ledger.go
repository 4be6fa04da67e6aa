package tradepnl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// jtrade is the ledger line format. Numbers are kept raw to report
// missing or non numeric values per field.
type jtrade struct {
	ID          string          `json:"id,omitempty"`
	Side        string          `json:"side"`
	Status      string          `json:"status,omitempty"`
	Asset       string          `json:"asset"`
	Fiat        string          `json:"fiat"`
	Amount      json.RawMessage `json:"amount"`
	Price       json.RawMessage `json:"price"`
	TotalFiat   json.RawMessage `json:"totalFiat"`
	Fee         json.RawMessage `json:"fee,omitempty"`
	CompletedAt string          `json:"completedAt"`
}

// DecodeLedger decodes trades from a stream of JSONL data, one trade per line.
//
// A line that cannot be turned into a trade does not fail the decoding: it is
// kept in [Ledger.Rejected]. Only read errors are returned.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		t, err := decodeTrade(lineBytes)
		if err != nil {
			ledger.rejected = append(ledger.rejected, Rejected{Line: line, Text: string(lineBytes), Reason: err.Error()})
			continue
		}
		ledger.trades = append(ledger.trades, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	ledger.stableSort()
	return ledger, nil
}

func decodeTrade(line []byte) (Trade, error) {
	var j jtrade
	if err := json.Unmarshal(line, &j); err != nil {
		return Trade{}, fmt.Errorf("not a correct json: %w", err)
	}

	var errs []error
	side, err := ParseSide(j.Side)
	errs = append(errs, err)
	amount, err := rawDecimal("amount", j.Amount, true)
	errs = append(errs, err)
	price, err := rawDecimal("price", j.Price, true)
	errs = append(errs, err)
	total, err := rawDecimal("totalFiat", j.TotalFiat, true)
	errs = append(errs, err)
	fee, err := rawDecimal("fee", j.Fee, false)
	errs = append(errs, err)
	at, err := time.Parse(time.RFC3339Nano, j.CompletedAt)
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid completedAt %q: %w", j.CompletedAt, err))
	}
	if err := errors.Join(errs...); err != nil {
		return Trade{}, err
	}

	status := Completed
	if j.Status != "" {
		status = Status(strings.ToUpper(j.Status))
	}
	return Trade{
		ID:           j.ID,
		Side:         side,
		Status:       status,
		Asset:        j.Asset,
		FiatCurrency: strings.ToUpper(j.Fiat),
		Amount:       amount,
		Price:        price,
		TotalFiat:    total,
		FeeFiat:      fee,
		CompletedAt:  at,
	}, nil
}

// rawDecimal parses a JSON number or a JSON string holding a number.
func rawDecimal(name string, raw json.RawMessage, required bool) (decimal.Decimal, error) {
	if len(raw) == 0 || string(raw) == "null" {
		if required {
			return decimal.Zero, fmt.Errorf("missing %s", name)
		}
		return decimal.Zero, nil
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero, fmt.Errorf("invalid %s %s: %w", name, raw, err)
		}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, fmt.Errorf("non numeric %s %q", name, text)
	}
	return d, nil
}

// EncodeTrade writes a single trade as a ledger line.
func EncodeTrade(w io.Writer, t Trade) error {
	var jw jsonObjectWriter
	jw.Optional("id", t.ID)
	jw.Append("side", strings.ToLower(string(t.Side)))
	if t.Status != "" && t.Status != Completed {
		jw.Append("status", strings.ToLower(string(t.Status)))
	}
	jw.Append("asset", t.Asset)
	jw.Append("fiat", t.FiatCurrency)
	jw.Append("amount", t.Amount)
	jw.Append("price", t.Price)
	jw.Append("totalFiat", t.TotalFiat)
	if !t.FeeFiat.IsZero() {
		jw.Append("fee", t.FeeFiat)
	}
	jw.Append("completedAt", t.CompletedAt.Format(time.RFC3339Nano))
	b, err := jw.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// EncodeLedger writes all the trades of the ledger, sorted, one per line.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, t := range ledger.trades {
		if err := EncodeTrade(w, t); err != nil {
			return fmt.Errorf("could not encode trade %q: %w", t.ID, err)
		}
	}
	return nil
}
