package baxter

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/baxter/pkg/domain"
	"github.com/aretw0/baxter/pkg/session"
)

// Runner drives a conversation over line-based IO.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	// JSON switches to JSON Lines: each input line is a JSON string or raw
	// text and each reply is written as one session.Reply object.
	// It implies Headless.
	JSON      bool
	Renderer  ContentRenderer
	SessionID string
}

// jsonError is written in JSON mode for rejected input.
type jsonError struct {
	Error string `json:"error"`
}

// ContentRenderer transforms an assistant message before it is printed.
// The CLI uses it to render markdown to ANSI.
type ContentRenderer func(string) (string, error)

// clearScreen is written when an action clears the chat.
const clearScreen = "\033[H\033[2J"

// NewRunner creates a Runner with a fresh session ID.
// Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{SessionID: session.NewSessionID()}
}

// Run reads messages until EOF, "exit" or "quit".
// Rejected input is reported and skipped. A handler contract violation ends
// the loop with an error.
func (r *Runner) Run(ctx context.Context, chat *session.Chat) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	if r.SessionID == "" {
		r.SessionID = session.NewSessionID()
	}
	if r.JSON {
		r.Headless = true
	}
	lines := bufio.NewReader(r.Input)
	conv := chat.Conversation(r.SessionID)
	defer chat.Close(r.SessionID)

	for {
		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}
		text, err := lines.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("input error: %w", err)
		}
		eof := err != nil
		input := r.decode(text)

		if input == "exit" || input == "quit" {
			if !r.JSON {
				fmt.Fprintln(r.Output, "Bye!")
			}
			return nil
		}
		if input != "" {
			if err := r.exchange(ctx, conv, input); err != nil {
				return err
			}
		}
		if eof {
			return nil
		}
	}
}

func (r *Runner) exchange(ctx context.Context, conv *session.Conversation, input string) error {
	reply, err := conv.Send(ctx, input)
	if err != nil {
		var violation *domain.HandlerContractViolation
		if errors.As(err, &violation) || ctx.Err() != nil {
			return err
		}
		if r.JSON {
			return json.NewEncoder(r.Output).Encode(jsonError{Error: err.Error()})
		}
		fmt.Fprintf(r.Output, "Error: %v\n", err)
		return nil
	}
	if r.JSON {
		return json.NewEncoder(r.Output).Encode(reply)
	}

	if reply.Cleared && !r.Headless {
		fmt.Fprint(r.Output, clearScreen)
	}
	for _, msg := range reply.Messages {
		r.print(msg)
	}
	if reply.Text != nil {
		r.print(*reply.Text)
	}
	return nil
}

// decode accepts a JSON string in JSON mode and falls back to the raw line.
func (r *Runner) decode(line string) string {
	line = strings.TrimSpace(line)
	if r.JSON {
		var val string
		if err := json.Unmarshal([]byte(line), &val); err == nil {
			return strings.TrimSpace(val)
		}
	}
	return line
}

func (r *Runner) print(msg string) {
	output := msg
	if r.Renderer != nil {
		if rendered, err := r.Renderer(msg); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(output))
}
