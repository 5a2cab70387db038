package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/treeoracle"
	"github.com/aretw0/treeoracle/internal/cli"
	"github.com/aretw0/treeoracle/pkg/adapters/mcp"
	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Exposes sample generation as MCP tools so agents can request ground-truth trees.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			transport, _ := cmd.Flags().GetString("transport")
			addr, _ := cmd.Flags().GetString("addr")

			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			store, closeStore, err := cli.NewStore(ctx, a.cfg.Store, a.logger)
			if err != nil {
				return err
			}
			defer closeStore()

			oracle := cli.NewOracle(a.cfg, store, a.logger, domain.Hooks{})
			srv := mcp.NewServer(oracle, store, treeoracle.Version)

			switch transport {
			case "stdio":
				// Logs go to stderr; stdout carries JSON-RPC.
				a.logger.Info("starting treeoracle MCP server (stdio)")
				return srv.ServeStdio()
			case "sse":
				baseURL, _ := cmd.Flags().GetString("base-url")
				if baseURL == "" {
					baseURL = "http://localhost" + addr
				}
				a.logger.Info("starting treeoracle MCP server (sse)", "addr", addr)
				if err := srv.ServeSSE(ctx, addr, baseURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				a.logger.Info("MCP server stopped gracefully")
				return nil
			default:
				return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
			}
		},
	}

	cmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	cmd.Flags().String("addr", ":8081", "Address to listen on (only for SSE)")
	cmd.Flags().String("base-url", "", "Public base URL advertised to SSE clients")
	return cmd
}
