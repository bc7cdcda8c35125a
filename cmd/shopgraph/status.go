package main

import (
	"context"
	"time"

	"github.com/shopgraph/shopgraph/internal/graph"
	"github.com/shopgraph/shopgraph/internal/types"
	"github.com/spf13/cobra"

	cmdinternal "github.com/shopgraph/shopgraph/cmd/shopgraph/internal"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report graph store connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd.Context())
	},
}

func runStatus(ctx context.Context) error {
	logger := newLogger()

	client, err := graph.NewNeo4jClient(clientConfig(cfg))
	if err != nil {
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Neo4j.ConnectionTimeout)
	defer cancel()

	formatter := cmdinternal.NewFormatter(outputFormat, nil)

	if err := client.Connect(connectCtx); err != nil {
		logger.Error("graph store unreachable", "uri", cfg.Neo4j.URI, "error", err)
		return formatter.PrintHealth(cfg.Neo4j.URI, clientHealthOnError(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client.Close(closeCtx)
	}()

	return formatter.PrintHealth(cfg.Neo4j.URI, client.Health(ctx))
}

func clientHealthOnError(err error) types.HealthStatus {
	return types.Unhealthy(err.Error())
}
