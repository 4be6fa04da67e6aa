package cmd

import (
	"flag"

	"github.com/etnz/tradepnl"
	"github.com/etnz/tradepnl/config"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors for flags whose values are known.
func flagPredictor(name string) complete.Predictor {
	switch name {
	case "m":
		var methods predict.Set
		for _, m := range tradepnl.Methods() {
			methods = append(methods, m.String())
		}
		return methods
	case "p":
		return predict.Set{"day", "week", "month", "quarter", "year"}
	case "source":
		return predict.Set{config.SourceFile, config.SourcePostgres}
	case "mapping":
		var names predict.Set
		for name := range tradepnl.Mappings() {
			names = append(names, name)
		}
		return names
	case "ledger":
		return predict.Files("*.jsonl")
	case "config":
		return predict.Dirs("*")
	default:
		return predict.Something
	}
}

// flagPredictors predicts every flag defined in fs. Boolean flags take no value.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = flagPredictor(f.Name)
	})
	return flags
}

// completion builds the completion tree of the subcommands.
func completion(top *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(top),
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		if c.Name() == "import" {
			sub.Args = predict.Files("*.json")
		}
		root.Sub[c.Name()] = sub
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

// Complete runs the shell completion when the program is invoked by the shell
// to complete a command line, and returns otherwise.
func Complete(name string) {
	completion(flag.CommandLine).Complete(name)
}
