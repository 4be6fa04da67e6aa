package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradepnl"
	"github.com/etnz/tradepnl/date"
	"github.com/etnz/tradepnl/renderer"
	"github.com/google/subcommands"
)

type seriesCmd struct {
	reportFlags
	period string
	carry  bool
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "display the realized profit per day, week, month, quarter or year" }
func (*seriesCmd) Usage() string {
	return `tpnl series [-p day|week|month|quarter|year] [-carry] [-c <currency>] [-a <asset>] [-m fifo|average] [-s <start>] [-d <end>] [-json]

  Computes the realized profit of each period, the cumulative profit, and the
  inventory and average cost at the end of each period.

  By default the profit of a day only matches that day's trades. With -carry
  sells are matched against the inventory bought on previous days.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	c.reportFlags.SetFlags(f)
	f.StringVar(&c.period, "p", "", "Bucket size (day, week, month, quarter, year). Overrides report.period.")
	f.BoolVar(&c.carry, "carry", false, "Match sells against the inventory of previous days.")
}

func (c *seriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	q, method, err := c.query(a.cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	period, err := a.cfg.Period()
	if c.period != "" {
		period, err = date.ParsePeriod(c.period)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	trades, err := a.repo.CompletedTrades(ctx, q)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading trades: %v\n", err)
		return subcommands.ExitFailure
	}

	var opts []tradepnl.SeriesOption
	if c.carry {
		opts = append(opts, tradepnl.WithCarriedInventory())
	}
	series, err := tradepnl.ComputeSeries(trades, method, q.FiatCurrency, period, opts...)
	if errors.Is(err, tradepnl.ErrInvalidArgument) {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	warnSkipped(a.logger, series.Skipped)

	if c.json {
		err = printJSON(series)
	} else {
		err = printMarkdown(renderer.SeriesMarkdown(series))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
