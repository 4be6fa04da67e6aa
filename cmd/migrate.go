package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "prepare the trade storage" }
func (*migrateCmd) Usage() string {
	return `tpnl migrate

  Creates the trades table of the postgres source, or an empty ledger file.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.repo.Migrate(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%s storage ready\n", a.cfg.Ledger.Source)
	return subcommands.ExitSuccess
}
