// Package config loads the tpnl configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/etnz/tradepnl"
	"github.com/etnz/tradepnl/date"
	"github.com/spf13/viper"
)

// Sources of trades.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config stores all configuration for the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Ledger   LedgerConfig
	Database DatabaseConfig
	Report   ReportConfig
	Import   ImportConfig
}

// LedgerConfig defines where trades are read from.
type LedgerConfig struct {
	File   string `mapstructure:"file"`
	Source string `mapstructure:"source"`
}

// DatabaseConfig defines the database connection settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// ReportConfig defines the default report parameters.
type ReportConfig struct {
	Currency string `mapstructure:"currency"`
	Asset    string `mapstructure:"asset"`
	Method   string `mapstructure:"method"`
	Period   string `mapstructure:"period"`
}

// ImportConfig defines user mappings for JSON exports.
type ImportConfig struct {
	Mappings map[string]tradepnl.ImportMapping `mapstructure:"mappings"`
}

// DefaultPaths returns the directories searched for tpnl.yaml.
func DefaultPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tpnl"))
	}
	return paths
}

// Load reads configuration from the first tpnl.yaml found in paths, then from
// TPNL_ prefixed environment variables. A missing file is not an error.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("tpnl")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("ledger.file", "trades.jsonl")
	v.SetDefault("ledger.source", SourceFile)
	v.SetDefault("database.url", "")
	v.SetDefault("report.currency", "EUR")
	v.SetDefault("report.asset", "")
	v.SetDefault("report.method", tradepnl.FIFO.String())
	v.SetDefault("report.period", date.Daily.String())

	v.SetEnvPrefix("TPNL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configured values.
func (c *Config) Validate() error {
	var errs []error
	switch c.Ledger.Source {
	case SourceFile, SourcePostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown ledger source %q, want %q or %q", c.Ledger.Source, SourceFile, SourcePostgres))
	}
	if c.Ledger.Source == SourcePostgres && c.Database.URL == "" {
		errs = append(errs, errors.New("database.url is required for the postgres source"))
	}
	if _, err := c.Method(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Period(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Method returns the configured profit method.
func (c *Config) Method() (tradepnl.Method, error) { return tradepnl.ParseMethod(c.Report.Method) }

// Period returns the configured series period.
func (c *Config) Period() (date.Period, error) { return date.ParsePeriod(c.Report.Period) }

// Mapping returns the import mapping called name. Configured mappings take
// precedence over the builtin ones.
func (c *Config) Mapping(name string) (tradepnl.ImportMapping, error) {
	if m, ok := c.Import.Mappings[name]; ok {
		return m, nil
	}
	if m, ok := tradepnl.Mappings()[name]; ok {
		return m, nil
	}
	return tradepnl.ImportMapping{}, fmt.Errorf("unknown mapping %q, available: %s", name, strings.Join(c.MappingNames(), ", "))
}

// MappingNames lists every known mapping name, sorted.
func (c *Config) MappingNames() []string {
	seen := make(map[string]bool)
	for name := range tradepnl.Mappings() {
		seen[name] = true
	}
	for name := range c.Import.Mappings {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
