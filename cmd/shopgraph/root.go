package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopgraph/shopgraph/internal/config"
	"github.com/shopgraph/shopgraph/internal/observability"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	outputFormat string
	logLevel     string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "shopgraph",
	Short: "shopgraph - e-commerce CSV to graph ingestion",
	Long: `shopgraph ingests tabular e-commerce exports (products, customers,
orders, suppliers, reviews), validates each row against a strict schema,
and loads the records into a Neo4j property graph with idempotent,
relationship-aware merges.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// loadConfig is called before any command runs to load configuration.
func loadConfig(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = os.Getenv("SHOPGRAPH_CONFIG")
	}

	loader := config.NewConfigLoader(config.NewValidator())
	loaded, err := loader.LoadWithDefaults(path)
	if err != nil {
		return err
	}

	if logLevel != "" {
		loaded.Logging.Level = logLevel
	}

	cfg = loaded
	return nil
}

// newLogger builds the process logger from the loaded configuration.
// Logs go to stderr so report output on stdout stays machine-readable.
func newLogger() *slog.Logger {
	return observability.NewLogger(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (default: $SHOPGRAPH_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text|json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level: debug|info|warn|error")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(statusCmd)
}
