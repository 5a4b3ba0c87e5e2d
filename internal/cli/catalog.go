package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// ListActions prints every registered action key.
func ListActions(ctx context.Context, opts Options, w io.Writer) error {
	a, _, err := createAssistant(ctx, opts, true)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, key := range a.ActionKeys() {
		fmt.Fprintln(w, key)
	}
	return nil
}

// ListPlugins prints the accepted plugins as a table, or as JSON.
func ListPlugins(ctx context.Context, opts Options, w io.Writer, asJSON bool) error {
	a, _, err := createAssistant(ctx, opts, true)
	if err != nil {
		return err
	}
	defer a.Close()

	plugins := a.Plugins()
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plugins)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tACTION\tSOURCE")
	for _, p := range plugins {
		fmt.Fprintf(tw, "%s\t%g\t%s\t%s\n", p.Name, p.Version, p.ActionKey, p.Source)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d plugin(s) loaded\n", len(plugins))
	return nil
}
