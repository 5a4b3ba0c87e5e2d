package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/baxter"
	"github.com/aretw0/baxter/pkg/adapters/mcp"
)

// Transports supported by ServeMCP.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// MCPOptions configures the MCP server.
type MCPOptions struct {
	Options
	Transport string
	Addr      string
	BaseURL   string
}

// ServeMCP exposes the assistant as MCP tools.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	// Stdout carries JSON-RPC on stdio, so logs go to stderr only.
	a, logger, err := createAssistant(ctx, opts.Options, false)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := mcp.NewServer(a.Chat(), a, baxter.Version, mcp.WithLogger(logger))
	switch opts.Transport {
	case TransportStdio, "":
		logger.Info("Starting MCP server (stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		baseURL := opts.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost" + opts.Addr
		}
		return srv.ServeSSE(ctx, opts.Addr, baseURL)
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", opts.Transport)
	}
}
