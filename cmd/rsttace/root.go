package main

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tkutschbach/RST-Tace/internal/config"
	"github.com/tkutschbach/RST-Tace/internal/pipeline"
	"github.com/tkutschbach/RST-Tace/internal/report"
)

var (
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:               "rsttace [command] [flags]",
	Short:             "Analyse, compare and evaluate RST trees",
	Long:              "rsttace analyses, compares and evaluates RST-trees annotated in rs3 format.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $RSTTACE_CONFIG)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// setup loads the configuration and installs the stderr logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger = slog.New(log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: true,
		Level:           level,
	}))
	return nil
}

func newPipeline() *pipeline.Pipeline {
	return pipeline.New(logger)
}

func console(cmd *cobra.Command) report.Console {
	return report.Console{W: cmd.OutOrStdout()}
}
