package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/catalogstage/config"
	"github.com/tsawler/catalogstage/internal/logging"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile string
	envFile    string
	logLevel   string
	logJSON    bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "catalogstage",
		Short:         "Stage print catalog PDFs as reviewable product data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configFile, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "dotenv file loaded before reading CATALOGSTAGE_* variables")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "log as JSON")

	root.AddCommand(newExtractCmd(g), newServeCmd(g))
	return root
}

// load reads the layered config and applies the global flags.
func (g *globalFlags) load(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(g.configFile, g.envFile)
	if err != nil {
		return nil, nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = g.logJSON
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
