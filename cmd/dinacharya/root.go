package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/dinacharya/internal/config"
	"github.com/PabloGalante/dinacharya/internal/observability"
)

var (
	// Global flags
	logLevel   string
	logFormat  string
	tuningFile string

	appCfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dinacharya",
	Short: "Energy-aware daily planner built on Ayurvedic dosha phases",
	Long: `dinacharya maps your waking day onto dosha phases, schedules tasks into
the phases that suit them, and suggests rests and adjustments.

Commands:
  serve    Run the HTTP API
  plan     Compute one plan and print it
  decide   Score a decision with the Dharmic Decision Framework

Configuration comes from DINACHARYA_* environment variables; flags win.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (json, console)")
	rootCmd.PersistentFlags().StringVar(&tuningFile, "tuning", "", "YAML tuning file (overrides DINACHARYA_TUNING_FILE)")
}

func loadConfig(cmd *cobra.Command) error {
	if tuningFile != "" {
		if err := os.Setenv("DINACHARYA_TUNING_FILE", tuningFile); err != nil {
			return err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	observability.Configure(cfg.LogLevel, cfg.LogFormat)
	appCfg = cfg
	return nil
}
