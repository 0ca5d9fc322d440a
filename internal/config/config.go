// Package config loads run configuration from the environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/spektr-org/churn/engine"
)

// Config is the run configuration. Environment values are defaults that
// command-line flags override.
type Config struct {
	InputPath  string            `env:"CHURN_INPUT_PATH" envDefault:"data/raw/WA_Fn-UseC_-Telco-Customer-Churn.csv"`
	OutputDir  string            `env:"CHURN_OUTPUT_DIR" envDefault:"data/processed"`
	SchemaPath string            `env:"CHURN_SCHEMA_PATH"`
	SQLitePath string            `env:"CHURN_SQLITE_PATH"`
	Filters    map[string]string `env:"CHURN_FILTERS" envSeparator:"," envKeyValSeparator:":"`
	Verbose    bool              `env:"CHURN_VERBOSE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads env defaults into a Config and then applies args.
// Each -filter flag adds one "column=v1|v2" segment filter.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, engine.WrapError(engine.KindConfigError, "load config", err)
	}

	var filters filterFlag
	fs.StringVar(&cfg.InputPath, "input", cfg.InputPath, "Path to the churn CSV (.csv, .csv.gz, .csv.zst)")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Directory for the insight CSV files")
	fs.StringVar(&cfg.SchemaPath, "schema", cfg.SchemaPath, "Path to a schema JSON (default: built-in Telco schema)")
	fs.StringVar(&cfg.SQLitePath, "sqlite", cfg.SQLitePath, "Also export insights to this SQLite database")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose logging")
	fs.Var(&filters, "filter", "Segment filter column=v1|v2 (repeatable)")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, engine.WrapError(engine.KindConfigError, "parse flags", err)
	}

	if len(filters) > 0 {
		if cfg.Filters == nil {
			cfg.Filters = make(map[string]string)
		}
		for _, f := range filters {
			col, vals, ok := strings.Cut(f, "=")
			if !ok || strings.TrimSpace(col) == "" {
				return Config{}, engine.NewError(engine.KindConfigError, fmt.Sprintf("invalid -filter %q, want column=value", f))
			}
			cfg.Filters[strings.TrimSpace(col)] = vals
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required fields.
func (c Config) Validate() error {
	if strings.TrimSpace(c.InputPath) == "" {
		return engine.NewError(engine.KindConfigError, "input path is required")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return engine.NewError(engine.KindConfigError, "output directory is required")
	}
	return nil
}

// SegmentFilters converts the "v1|v2" filter values into engine filters.
func (c Config) SegmentFilters() engine.Filters {
	if len(c.Filters) == 0 {
		return engine.Filters{}
	}
	cols := make([]string, 0, len(c.Filters))
	for col := range c.Filters {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	out := engine.Filters{Dimensions: make(map[string][]string, len(cols))}
	for _, col := range cols {
		for _, v := range strings.Split(c.Filters[col], "|") {
			if v = strings.TrimSpace(v); v != "" {
				out.Dimensions[col] = append(out.Dimensions[col], v)
			}
		}
	}
	return out
}

type filterFlag []string

func (f *filterFlag) String() string { return strings.Join(*f, ",") }

func (f *filterFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}
