package action

import (
	"context"
	"errors"

	"github.com/aretw0/baxter/pkg/domain"
)

// ErrNoWindow is returned by Call.Ask and Call.Say when the message did not
// come from a window that can talk back.
var ErrNoWindow = errors.New("no chat window attached to trigger")

// Handler is implemented by every action.
// GetResponse must not return before its response is final.
type Handler interface {
	GetResponse(ctx context.Context, call Call) (string, error)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, call Call) (string, error)

// GetResponse calls f(ctx, call).
func (f HandlerFunc) GetResponse(ctx context.Context, call Call) (string, error) {
	return f(ctx, call)
}

// Call is everything a handler gets for one invocation.
type Call struct {
	Input         string
	MainTemplate  string
	ErrorTemplate string
	Utils         *Utils
	Trigger       domain.Trigger
}

// Ask shows prompt in the window and blocks until the user answers.
func (c Call) Ask(ctx context.Context, prompt string) (string, error) {
	if c.Trigger.UI == nil {
		return "", ErrNoWindow
	}
	return c.Trigger.UI.RequestInput(ctx, prompt)
}

// Say sends an intermediate message without finishing the action.
func (c Call) Say(ctx context.Context, text string) error {
	if c.Trigger.UI == nil {
		return ErrNoWindow
	}
	return c.Trigger.UI.SendMessage(ctx, text)
}

// isMissing reports whether h cannot be invoked at all.
func isMissing(h Handler) bool {
	if h == nil {
		return true
	}
	if f, ok := h.(HandlerFunc); ok && f == nil {
		return true
	}
	return false
}
