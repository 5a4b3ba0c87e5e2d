package main

import (
	"context"

	"github.com/aretw0/baxter/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP chat server",
	Long: `Exposes the assistant over HTTP: JSON messages, server-sent events and a
websocket per session, plus /metrics for Prometheus.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.ServeOptions{Options: commonOptions(cmd)}
		opts.Addr, _ = cmd.Flags().GetString("addr")
		opts.Watch, _ = cmd.Flags().GetBool("watch")
		noMetrics, _ := cmd.Flags().GetBool("no-metrics")
		opts.Metrics = !noMetrics

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()
		return cli.Serve(sigCtx, opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (default http.addr from config)")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload settings when the config file changes")
	serveCmd.Flags().Bool("no-metrics", false, "Disable the /metrics endpoint")
}
