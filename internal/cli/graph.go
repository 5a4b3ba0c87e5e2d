package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/baxter/internal/presentation/graph"
	"github.com/aretw0/baxter/pkg/domain"
)

// PrintGraph writes the intent routing as a Mermaid diagram. With a session
// ID, the action a repeat would replay is highlighted.
func PrintGraph(ctx context.Context, opts Options, sessionID string, w io.Writer) error {
	a, _, err := createAssistant(ctx, opts, true)
	if err != nil {
		return err
	}
	defer a.Close()

	var overlay *graph.Overlay
	if sessionID != "" {
		state, err := a.Chat().Manager().Load(ctx, sessionID)
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			return fmt.Errorf("session %q not found", sessionID)
		case err != nil:
			return err
		}
		overlay = &graph.Overlay{LastAction: domain.Deref(state.LastAction)}
	}

	_, err = fmt.Fprint(w, graph.GenerateMermaid(a.Routes(), overlay))
	return err
}
