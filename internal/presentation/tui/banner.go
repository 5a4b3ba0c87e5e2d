package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Baxter banner with the version and plugin count.
func PrintBanner(w io.Writer, version string, plugins int) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"  ____             _            ", "#818cf8"},
		{" | __ )  __ ___  _| |_ ___ _ __ ", "#a78bfa"},
		{" |  _ \\ / _` \\ \\/ / __/ _ \\ '__|", "#c084fc"},
		{" | |_) | (_| |>  <| ||  __/ |   ", "#e879f9"},
		{" |____/ \\__,_/_/\\_\\\\__\\___|_|   ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String(fmt.Sprintf(" %s · %d plugin(s) loaded", version, plugins)).Faint())
	fmt.Fprintln(w)
}
