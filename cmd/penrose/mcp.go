package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/aretw0/penrose/internal/cli"
	"github.com/aretw0/penrose/pkg/adapters/mcp"
	"github.com/aretw0/penrose/pkg/schema"
	"github.com/spf13/cobra"
)

var transports = []string{"stdio", "sse"}

func newMCPCmd(a *app) *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Exposes the generator to AI agents as MCP tools (generate_tiling,
describe_growth) and the rule table as a resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := schema.Enum(transports...).Validate(transport); err != nil {
				return fmt.Errorf("transport: %w", err)
			}
			ctx := cmd.Context()

			gen, err := cli.NewGenerator(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			cache, _, closeCache, err := cli.NewCache(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer closeCache()

			srv := mcp.NewServer(gen, mcp.WithCache(cache), mcp.WithLogger(a.logger))

			switch transport {
			case "stdio":
				// Stdout carries JSON-RPC.
				log.SetOutput(os.Stderr)
				return srv.ServeStdio()
			default:
				err := srv.ServeSSE(ctx, a.cfg.HTTP.Port)
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	cmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	return cmd
}
