package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aleksaelezovic/rdfstore/internal/config"
)

var (
	configPath string
	backend    string
	app        *App
)

var rootCmd = &cobra.Command{
	Use:           "rdfstore",
	Short:         "An in-memory RDF quad store",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if configPath != "" {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("backend") {
			cfg.Backend = backend
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		var err error
		app, err = NewApp(cfg, cmd.ErrOrStderr())
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		if err := app.WriteMetrics(cmd.ErrOrStderr()); err != nil {
			return err
		}
		return app.Close()
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", config.BackendMemory, "graph backend: memory or badger")

	loadCmd.Flags().String("subject", "", "subject IRI to query")
	loadCmd.Flags().String("predicate", "", "predicate IRI to query")
	loadCmd.Flags().String("object", "", "object IRI to query")
	loadCmd.Flags().String("graph", "", "graph label to query; empty is the default graph")

	rootCmd.AddCommand(demoCmd, loadCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
