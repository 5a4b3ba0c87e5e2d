package main

import (
	"fmt"
	"os"

	"github.com/aretw0/baxter/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "baxter",
	Short: "Baxter is a conversational assistant",
	Long: `Baxter classifies chat messages into intents and answers them with actions:
built-in ones, compiled plugins and script plugins from the plugins directory.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default ./baxter.yaml or $HOME/.baxter/baxter.yaml)")
	rootCmd.PersistentFlags().StringSlice("env-file", nil, "Dotenv files to load (default .env)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// commonOptions reads the persistent flags.
func commonOptions(cmd *cobra.Command) cli.Options {
	file, _ := cmd.Flags().GetString("config")
	envFiles, _ := cmd.Flags().GetStringSlice("env-file")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{
		ConfigFile: file,
		EnvFiles:   envFiles,
		Debug:      debug,
	}
}
