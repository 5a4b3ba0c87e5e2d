package main

import (
	"os"

	"github.com/aretw0/baxter/internal/cli"
	"github.com/spf13/cobra"
)

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List registered action keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.ListActions(cmd.Context(), commonOptions(cmd), os.Stdout)
	},
}

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List loaded plugins",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return cli.ListPlugins(cmd.Context(), commonOptions(cmd), os.Stdout, asJSON)
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the intent routing as a Mermaid diagram",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		return cli.PrintGraph(cmd.Context(), commonOptions(cmd), sessionID, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(actionsCmd, pluginsCmd, graphCmd)

	pluginsCmd.Flags().Bool("json", false, "Print JSON instead of a table")
	graphCmd.Flags().String("session", "", "Highlight the last action of this session")
}
