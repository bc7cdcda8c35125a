package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopgraph/shopgraph/internal/config"
	"github.com/shopgraph/shopgraph/internal/graph"
	"github.com/shopgraph/shopgraph/internal/ingest"
	"github.com/spf13/cobra"

	cmdinternal "github.com/shopgraph/shopgraph/cmd/shopgraph/internal"
)

var dryRun bool

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest an e-commerce CSV export into the graph store",
	Long: `Ingest validates a CSV export row by row and performs idempotent
merge operations against Neo4j. Each entity kind has its own subcommand
matching the export's column layout. Re-running a file is safe: node
properties are overwritten and relationships are never duplicated.`,
}

func init() {
	ingestCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false,
		"validate rows without connecting to the graph store")

	for _, kind := range ingest.Kinds() {
		ingestCmd.AddCommand(newIngestSubcommand(kind))
	}
}

func newIngestSubcommand(kind ingest.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <file>", kind),
		Short: fmt.Sprintf("Ingest a %s CSV export", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), kind, args[0])
		},
	}
}

func runIngest(ctx context.Context, kind ingest.Kind, path string) error {
	logger := newLogger()

	var client graph.GraphClient
	if !dryRun && !cfg.Ingest.DryRun {
		c, err := graph.NewNeo4jClient(clientConfig(cfg))
		if err != nil {
			return err
		}

		connectCtx, cancel := context.WithTimeout(ctx, cfg.Neo4j.ConnectionTimeout)
		err = c.Connect(connectCtx)
		cancel()
		if err != nil {
			return err
		}
		// The connection is scoped to this run and released on every exit path.
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if cerr := c.Close(closeCtx); cerr != nil {
				logger.Warn("failed to close graph client", "error", cerr)
			}
		}()
		client = c
	} else {
		logger.Info("dry run: validating without store operations")
	}

	pipeline := ingest.NewPipeline(client, logger)
	summary := pipeline.Run(ctx, kind, path)

	formatter := cmdinternal.NewFormatter(outputFormat, nil)
	if err := formatter.PrintSummary(summary); err != nil {
		return err
	}

	if summary.Status == ingest.StatusFailed {
		return fmt.Errorf("ingestion failed: %s", summary.Message)
	}
	return nil
}

func clientConfig(cfg *config.Config) graph.ClientConfig {
	return graph.ClientConfig{
		URI:                     cfg.Neo4j.URI,
		Username:                cfg.Neo4j.Username,
		Password:                cfg.Neo4j.Password,
		Database:                cfg.Neo4j.Database,
		MaxConnectionPoolSize:   cfg.Neo4j.MaxConnectionPoolSize,
		ConnectionTimeout:       cfg.Neo4j.ConnectionTimeout,
		MaxTransactionRetryTime: cfg.Neo4j.MaxTransactionRetryTime,
	}
}
