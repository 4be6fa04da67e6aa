package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradepnl"
	"github.com/etnz/tradepnl/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	reportFlags
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the realized profit of the trades" }
func (*summaryCmd) Usage() string {
	return `tpnl summary [-c <currency>] [-a <asset>] [-m fifo|average] [-s <start>] [-d <end>] [-json]

  Computes the realized profit of the completed trades in the window, with
  the buy and sell totals, the average prices and the remaining inventory.
`
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	trades, err := a.repo.CompletedTrades(ctx, q)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading trades: %v\n", err)
		return subcommands.ExitFailure
	}

	summary, err := tradepnl.ComputeRealizedProfit(trades, method, q.FiatCurrency)
	if errors.Is(err, tradepnl.ErrInvalidArgument) {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	warnSkipped(a.logger, summary.Skipped)

	if c.json {
		err = printJSON(summary)
	} else {
		err = printMarkdown(renderer.SummaryMarkdown(summary))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
