// Package cmd implements the tpnl CLI application to report realized profit on
// P2P trades.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/tradepnl/config"
	"github.com/etnz/tradepnl/store"
	"github.com/google/subcommands"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configDir   = flag.String("config", "", "Folder containing tpnl.yaml. Defaults to the current folder then $HOME/.config/tpnl.")
	source      = flag.String("source", "", "Where trades are stored: file or postgres. Overrides ledger.source.")
	ledgerFile  = flag.String("ledger", "", "Path to the JSONL ledger file. Overrides ledger.file.")
	databaseURL = flag.String("database", "", "PostgreSQL connection URL. Overrides database.url.")
	verbose     = flag.Bool("v", false, "Log debug information.")
	plainOutput = flag.Bool("plain", false, "Print markdown as is instead of rendering it for the terminal.")

	// stdout is where reports are written.
	stdout io.Writer = os.Stdout
)

// Commands lists every tpnl subcommand.
var Commands = []subcommands.Command{
	&summaryCmd{},
	&seriesCmd{},
	&methodsCmd{},
	&importCmd{},
	&migrateCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for _, cmd := range Commands {
		group := "reports"
		switch cmd.Name() {
		case "import", "migrate":
			group = "storage"
		}
		c.Register(cmd, group)
	}
}

// app is what every subcommand needs: the configuration, a logger and the
// trade repository.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	repo   store.Repository
}

// newApp loads the configuration, applies the global flags and opens the
// trade repository.
func newApp(ctx context.Context) (*app, error) {
	paths := config.DefaultPaths()
	if *configDir != "" {
		paths = []string{*configDir}
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return nil, err
	}
	if *source != "" {
		cfg.Ledger.Source = *source
	}
	if *ledgerFile != "" {
		cfg.Ledger.File = *ledgerFile
	}
	if *databaseURL != "" {
		cfg.Database.URL = *databaseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		return nil, fmt.Errorf("cannot create logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}
	switch cfg.Ledger.Source {
	case config.SourcePostgres:
		repo, err := store.NewPostgresRepository(ctx, cfg.Database.URL, logger)
		if err != nil {
			return nil, err
		}
		a.repo = repo
	default:
		a.repo = store.NewFileRepository(cfg.Ledger.File, logger)
	}
	logger.Debug("repository opened", zap.String("source", cfg.Ledger.Source))
	return a, nil
}

// Close releases the repository and flushes the logs.
func (a *app) Close() {
	a.repo.Close()
	_ = a.logger.Sync()
}

// newLogger logs warnings to stderr, or everything when verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
