package cmd

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"scrolltable/internal/config"
	"scrolltable/internal/db"
	"scrolltable/internal/logging"
	"scrolltable/internal/ui"
)

//go:embed demo_layout.yaml
var demoLayout []byte

// Run opens the database, works out which table to show and runs the
// terminal UI until the user quits.
func Run(cmd *cobra.Command, cfg *Config) error {
	logger, closer, err := logging.New(cfg.LogLevel, cfg.LogFile, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer closer.Close()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.Demo {
		if err := db.SeedDemo(database, cfg.DemoRows); err != nil {
			return err
		}
		logger.WithField("db", cfg.DBPath).Info("demo data ready")
	}

	layout, err := loadLayout(cfg)
	if err != nil {
		return err
	}

	tableName, err := resolveTable(database, cfg, layout)
	if err != nil {
		return err
	}
	idColumn := cfg.IDColumn
	if idColumn == "" {
		idColumn = layout.IDColumn
	}

	logger.WithFields(logrus.Fields{
		"db":     cfg.DBPath,
		"table":  tableName,
		"layout": cfg.LayoutPath,
	}).Info("starting")

	m := ui.New(database, ui.Options{
		Table:    tableName,
		IDColumn: idColumn,
		Layout:   layout,
		Logger:   logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(cmd.OutOrStdout()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

func loadLayout(cfg *Config) (*config.Layout, error) {
	switch {
	case cfg.LayoutPath != "":
		return config.LoadLayout(cfg.LayoutPath)
	case cfg.Demo && (cfg.Table == "" || cfg.Table == db.DemoTable):
		return config.ParseLayout(demoLayout)
	}
	return &config.Layout{}, nil
}

// resolveTable picks the table from the flag, then the layout, then the only
// table in the database.
func resolveTable(database *sql.DB, cfg *Config, layout *config.Layout) (string, error) {
	if cfg.Table != "" {
		return cfg.Table, nil
	}
	if layout.Table != "" {
		return layout.Table, nil
	}
	if cfg.Demo {
		return db.DemoTable, nil
	}

	tables, err := db.ListTables(database)
	if err != nil {
		return "", err
	}
	switch len(tables) {
	case 0:
		return "", fmt.Errorf("database %s has no tables", cfg.DBPath)
	case 1:
		return tables[0], nil
	}
	return "", fmt.Errorf("pass --table, the database has several: %s", strings.Join(tables, ", "))
}
