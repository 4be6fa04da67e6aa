package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradepnl"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type importCmd struct {
	mapping string
	dryRun  bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import trades from an exchange JSON export" }
func (*importCmd) Usage() string {
	return `tpnl import [-mapping <name>] [-n] <file.json>

  Reads trades from a JSON export and stores them. The mapping tells where
  each trade field is in the document, either a builtin one (binance-p2p) or
  one declared under import.mappings in tpnl.yaml.

  Trades with an ID already stored are ignored.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mapping, "mapping", "binance-p2p", "Name of the import mapping.")
	f.BoolVar(&c.dryRun, "n", false, "Decode the file but do not store the trades.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "import expects exactly one file")
		return subcommands.ExitUsageError
	}
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	mapping, err := a.cfg.Mapping(c.mapping)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening export: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	trades, rejected, err := tradepnl.ImportJSON(file, mapping)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	for _, r := range rejected {
		a.logger.Warn("record rejected", zap.Int("record", r.Line), zap.String("reason", r.Reason))
	}
	if c.dryRun {
		fmt.Fprintf(stdout, "%d trades decoded, %d rejected\n", len(trades), len(rejected))
		return subcommands.ExitSuccess
	}

	n, err := a.repo.Insert(ctx, trades...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error storing trades: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%d trades imported, %d already known, %d rejected\n", n, len(trades)-n, len(rejected))
	return subcommands.ExitSuccess
}
