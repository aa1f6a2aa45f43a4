package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes the environment variables that back each flag, e.g.
// SCROLLTABLE_DB for --db.
const EnvPrefix = "SCROLLTABLE_"

// Config holds CLI configuration.
type Config struct {
	DBPath     string
	Table      string
	IDColumn   string
	LayoutPath string
	Demo       bool
	DemoRows   int
	LogLevel   string
	LogFile    string
	LogFormat  string
}

// RunFunc starts the application with a parsed configuration.
type RunFunc func(cmd *cobra.Command, config *Config) error

// NewRootCommand builds the scrolltable command. run is invoked after flags,
// .env files and environment fallbacks have been applied.
func NewRootCommand(version string, run RunFunc) *cobra.Command {
	config := &Config{}

	root := &cobra.Command{
		Use:     "scrolltable",
		Short:   "Browse a SQLite table with a fixed, sortable header",
		Version: version,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			// Load .env files first so env-based defaults apply to unset flags.
			loadDotEnv(".env", ".env.local")
			if err := applyEnv(cmd.Flags()); err != nil {
				return err
			}
			return config.finish()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, config)
		},
		SilenceUsage: true,
	}

	flags := root.Flags()
	flags.StringVar(&config.DBPath, "db", "", "Path to SQLite database file (default with --demo: ~/.scrolltable/demo.db)")
	flags.StringVar(&config.Table, "table", "", "Table or view to browse")
	flags.StringVar(&config.IDColumn, "id-column", "", "Column holding the row id used by jump-to-row (default: the primary key)")
	flags.StringVar(&config.LayoutPath, "layout", "", "YAML file describing columns and the default sort")
	flags.BoolVar(&config.Demo, "demo", false, "Seed and browse a demo restaurant log")
	flags.IntVar(&config.DemoRows, "demo-rows", 400, "Number of visits the demo seeds")
	flags.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&config.LogFile, "log-file", "", "Write logs to this file (default: discard)")
	flags.StringVar(&config.LogFormat, "log-format", "text", "Log format: text or json")

	return root
}

// Execute runs the root command against os.Args.
func Execute(version string, run RunFunc) error {
	return NewRootCommand(version, run).Execute()
}

func (c *Config) finish() error {
	if c.DBPath != "" {
		return nil
	}
	if !c.Demo {
		return fmt.Errorf("no database given: pass --db or --demo")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	configDir := filepath.Join(home, ".scrolltable")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	c.DBPath = filepath.Join(configDir, "demo.db")
	return nil
}

// EnvName returns the environment variable backing a flag.
func EnvName(flag string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// applyEnv sets every flag the command line left unset from its
// environment variable.
func applyEnv(flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || f.Name == "help" || f.Name == "version" {
			return
		}
		value, ok := os.LookupEnv(EnvName(f.Name))
		if !ok {
			return
		}
		if setErr := flags.Set(f.Name, value); setErr != nil {
			err = fmt.Errorf("invalid %s: %w", EnvName(f.Name), setErr)
		}
	})
	return err
}

// loadDotEnv loads each file that exists. Variables already set in the
// environment win.
func loadDotEnv(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}
