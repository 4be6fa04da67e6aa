// Command tpnl reports the realized profit of P2P trades.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/tradepnl/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// a .env file may hold TPNL_* settings, it is optional.
	_ = godotenv.Load()

	name := path.Base(os.Args[0])
	cmd.Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	cmd.Register(commander)
	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !isRegistered(sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func isRegistered(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range cmd.Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}
