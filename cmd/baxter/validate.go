package main

import (
	"fmt"
	"os"

	"github.com/aretw0/baxter/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the intent dataset for consistency",
	Long:  `Loads the dataset and plugins, then reports unknown actions, misnamed plugin intents, duplicate tags, broken spans and malformed templates.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.Validate(cmd.Context(), commonOptions(cmd), os.Stdout); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
