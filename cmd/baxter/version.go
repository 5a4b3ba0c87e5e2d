package main

import (
	"fmt"

	"github.com/aretw0/baxter"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of baxter",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "baxter version %s\n", baxter.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
