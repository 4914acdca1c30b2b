package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"vitalis-hq/glosaguard/pkg/cli"
	"vitalis-hq/glosaguard/pkg/config"
	"vitalis-hq/glosaguard/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "glosaguard",
	Short: "GlosaGuard - TISS guide validation and glosa prediction",
	Long: `GlosaGuard validates TISS healthcare claim guides (guias) before they
are submitted to an operadora, predicting the glosas (rejections) the
claim would receive.

It parses guide XML, classifies the guide type, and runs a priority-ordered
catalog of validation rules covering:
  - Patient and provider identity documents (CPF, CNPJ, CNS)
  - Date formats and cross-field date consistency
  - TUSS procedure and CBO occupation table lookups
  - Batch (lote) limits and cross-guide duplication
  - Critical business domains and financial reconciliation`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig initializes the process-wide configuration singleton from the
// --config file when given, falling back to defaults otherwise. Every
// subcommand reads the same instance. --verbose forces debug logging.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		if err := config.Initialize(cfgFile); err != nil {
			return nil, cli.NewConfigError(cfgFile, err)
		}
	}

	cfg := config.GetConfig()
	if cfg == nil {
		cfg = config.NewDefaultConfig()
		config.SetConfig(cfg)
	}

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	return cfg, nil
}

// newLogger builds the application logger from configuration.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		RedactPII: cfg.Telemetry.Logging.RedactPII,
		Writer:    os.Stderr,
	})
}
