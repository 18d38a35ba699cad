// Package cli implements the persontable command line: the HTTP server,
// the terminal UI and a one-shot list command.
package cli

import (
	"fmt"
	"os"
	"time"

	"persontable/internal/config"
	"persontable/internal/engine"
	"persontable/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// version is set at build time.
var version = "development version"

// app is the state shared by all subcommands once the persistent flags
// have been parsed.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *logrus.Logger
}

func NewRootCommand() *cobra.Command {
	a := &app{}

	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "persontable",
		Short:         "Browse a table of people by search, filter, sort and page",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.SetVersionTemplate(`persontable {{.Version}}` + "\n")
	rootCmd.PersistentFlags().StringVarP(
		&a.configPath, "config", "c", "", "YAML config file",
	)
	rootCmd.PersistentFlags().StringVar(
		&a.logLevel, "log-level", "", "log level (overrides logging.level)",
	)

	rootCmd.AddCommand(
		newServeCommand(a),
		newTUICommand(a),
		newListCommand(a),
	)
	return rootCmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// viewOptions turns the table section of the config into view options.
func (a *app) viewOptions() (engine.Options, error) {
	nm, err := engine.ParseNameMatch(a.cfg.Table.NameMatch)
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{
		PageSize:     a.cfg.Table.PageSize,
		NameMatch:    nm,
		ShowIDColumn: a.cfg.Table.ShowIDColumn,
	}, nil
}

// loadStore reads the configured data file, or the built-in people when
// none is set.
func (a *app) loadStore() (*engine.ColumnStore, error) {
	path := a.cfg.Table.DataFile
	if path == "" {
		return engine.Seed(), nil
	}

	t0 := time.Now()
	store, err := engine.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	a.log.WithFields(logrus.Fields{
		"file":    path,
		"records": store.Len(),
		"took":    time.Since(t0),
	}).Info("data loaded")
	return store, nil
}
