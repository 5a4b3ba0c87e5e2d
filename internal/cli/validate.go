package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/baxter/internal/validator"
)

// Validate checks the configured dataset against the registered actions.
func Validate(ctx context.Context, opts Options, w io.Writer) error {
	a, _, err := createAssistant(ctx, opts, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := validator.Validate(a.Dataset(), a.ActionKeys()); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d intents, %d actions: dataset is valid\n", len(a.Dataset().Intents), len(a.ActionKeys()))
	return nil
}
