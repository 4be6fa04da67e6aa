package cmd

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/etnz/tradepnl"
	"github.com/etnz/tradepnl/config"
	"github.com/etnz/tradepnl/date"
	"go.uber.org/zap"
)

// reportFlags are the flags shared by the report subcommands. Empty values
// fall back to the configuration.
type reportFlags struct {
	currency string
	asset    string
	method   string
	start    string
	end      string
	json     bool
}

func (r *reportFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.currency, "c", "", "Fiat currency of the trades. Overrides report.currency.")
	f.StringVar(&r.asset, "a", "", "Asset traded. Defaults to the asset of the first trade.")
	f.StringVar(&r.method, "m", "", "Profit method: fifo or average. Overrides report.method.")
	f.StringVar(&r.start, "s", "", "First day of the window (YYYY-MM-DD), open if empty.")
	f.StringVar(&r.end, "d", "", "Last day of the window (YYYY-MM-DD), open if empty.")
	f.BoolVar(&r.json, "json", false, "Print JSON instead of markdown.")
}

// query resolves the flags against cfg.
func (r *reportFlags) query(cfg *config.Config) (tradepnl.Query, tradepnl.Method, error) {
	q := tradepnl.Query{FiatCurrency: cfg.Report.Currency, Asset: cfg.Report.Asset}
	if r.currency != "" {
		q.FiatCurrency = r.currency
	}
	if r.asset != "" {
		q.Asset = r.asset
	}

	method, err := cfg.Method()
	if r.method != "" {
		method, err = tradepnl.ParseMethod(r.method)
	}
	if err != nil {
		return q, 0, err
	}

	var from, to date.Date
	if r.start != "" {
		if from, err = date.Parse(r.start); err != nil {
			return q, 0, fmt.Errorf("%w: start date: %v", tradepnl.ErrInvalidArgument, err)
		}
	}
	if r.end != "" {
		if to, err = date.Parse(r.end); err != nil {
			return q, 0, fmt.Errorf("%w: end date: %v", tradepnl.ErrInvalidArgument, err)
		}
	}
	if !from.IsZero() && !to.IsZero() {
		q.Range = date.NewRange(from, to)
	} else {
		q.Range = date.Range{From: from, To: to}
	}
	return q, method, nil
}

// warnSkipped logs every trade left out of a computation.
func warnSkipped(logger *zap.Logger, skipped []tradepnl.SkippedTrade) {
	for _, s := range skipped {
		logger.Warn("trade skipped", zap.Int("index", s.Index), zap.String("id", s.ID), zap.String("reason", s.Reason))
	}
}

// printJSON writes v indented to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
