package main

import (
	"context"
	"os"

	"github.com/aretw0/baxter/internal/cli"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant in the terminal",
	Long: `Starts an interactive chat. When stdin is not a terminal the chat runs headless:
one message per line, one reply per line, no banner.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.ChatOptions{
			Options: commonOptions(cmd),
			In:      os.Stdin,
			Out:     os.Stdout,
		}
		opts.SessionID, _ = cmd.Flags().GetString("session")
		opts.Headless, _ = cmd.Flags().GetBool("headless")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Watch, _ = cmd.Flags().GetBool("watch")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()
		return cli.RunChat(sigCtx, opts)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().String("session", "", "Session ID to resume (default: a new session)")
	chatCmd.Flags().Bool("headless", false, "Run without banner, prompt and markdown rendering")
	chatCmd.Flags().Bool("json", false, "Exchange JSON Lines instead of plain text")
	chatCmd.Flags().BoolP("watch", "w", false, "Reload settings when the config file changes")

	// 'chat' is the default command.
	rootCmd.RunE = chatCmd.RunE
	rootCmd.Flags().AddFlagSet(chatCmd.Flags())
}
