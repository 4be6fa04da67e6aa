package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradepnl"
	"github.com/etnz/tradepnl/renderer"
	"github.com/google/subcommands"
)

type methodsCmd struct {
	json bool
}

func (*methodsCmd) Name() string     { return "methods" }
func (*methodsCmd) Synopsis() string { return "list the profit methods" }
func (*methodsCmd) Usage() string {
	return `tpnl methods [-json]

  Lists the methods available to match sells against buys.
`
}

func (c *methodsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print JSON instead of markdown.")
}

func (c *methodsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var err error
	if c.json {
		labels := make(map[string]string)
		for _, m := range tradepnl.Methods() {
			labels[m.String()] = m.Label()
		}
		err = printJSON(labels)
	} else {
		err = printMarkdown(renderer.MethodsMarkdown())
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
