package cli

import (
	"context"
	"errors"
	"io"

	"github.com/aretw0/baxter"
	"github.com/aretw0/baxter/internal/presentation/tui"
)

// ChatOptions configures an interactive chat.
type ChatOptions struct {
	Options
	SessionID string
	// Headless disables the banner, the prompt and markdown rendering.
	// It is forced on when In is not a terminal.
	Headless bool
	// JSON writes replies as JSON Lines. It implies Headless.
	JSON bool
	In   io.Reader
	Out  io.Writer
}

// RunChat starts a chat on In/Out until EOF, "exit" or ctx is cancelled.
func RunChat(ctx context.Context, opts ChatOptions) error {
	headless := opts.Headless || opts.JSON || !isTerminal(opts.In)

	a, logger, err := createAssistant(ctx, opts.Options, !headless)
	if err != nil {
		return err
	}
	defer a.Close()

	r := baxter.NewRunner()
	r.Input = opts.In
	r.Output = opts.Out
	r.Headless = headless
	r.JSON = opts.JSON
	if opts.SessionID != "" {
		r.SessionID = opts.SessionID
	}

	if !headless {
		tui.PrintBanner(opts.Out, baxter.Version, a.PluginCount())
		printSystemMessage(opts.Out, "Session '%s' active. Type 'exit' to leave.", r.SessionID)
		r.Renderer = tui.NewRenderer()
	}
	logger.Info("Chat started", "session_id", r.SessionID, "plugins", a.PluginCount())

	err = r.Run(ctx, a.Chat())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
