// Package randomnumber is a compiled plugin that asks the user for bounds and
// answers with a random number between them.
package randomnumber

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/aretw0/baxter/pkg/action"
	"github.com/aretw0/baxter/pkg/plugin"
	"github.com/aretw0/baxter/pkg/template"
)

// Name is the plugin name. Its action key is plugin-get_random_number-action.
const Name = "get_random_number"

// Prompts shown while collecting the bounds.
const (
	PromptMin   = "Bitte nenne mir den kleinsten Wert, den die Zahl haben darf."
	PromptMax   = "Wie groß darf die Zahl maximal sein?"
	PromptRetry = "Bitte gib eine Zahl ein! (z.B. 1)"
)

// Plugin answers with a number in [min, max].
type Plugin struct {
	plugin.Base
	uint64N func(n uint64) uint64
}

// New creates the plugin. uint64N returns a value in [0, n), where n == 0
// stands for the full 64-bit range; nil uses math/rand/v2.
func New(uint64N func(n uint64) uint64) *Plugin {
	if uint64N == nil {
		uint64N = randUint64N
	}
	return &Plugin{
		Base:    plugin.Base{PluginName: Name, PluginVersion: 1.0},
		uint64N: uint64N,
	}
}

func randUint64N(n uint64) uint64 {
	if n == 0 {
		return rand.Uint64()
	}
	return rand.Uint64N(n)
}

// Factory registers the plugin in a startup plugin table.
func Factory() plugin.Plugin {
	return New(nil)
}

// GetResponse asks for both bounds and formats {number} into the main template.
func (p *Plugin) GetResponse(ctx context.Context, call action.Call) (string, error) {
	lo, err := askNumber(ctx, call, PromptMin)
	if err != nil {
		return "", err
	}
	hi, err := askNumber(ctx, call, PromptMax)
	if err != nil {
		return "", err
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	n := lo
	if hi > lo {
		// Unsigned arithmetic: the full int range yields span 0.
		n = lo + int(p.uint64N(uint64(hi)-uint64(lo)+1))
	}
	return template.Format(call.MainTemplate, map[string]any{"number": n})
}

func askNumber(ctx context.Context, call action.Call, prompt string) (int, error) {
	for {
		answer, err := call.Ask(ctx, prompt)
		if err != nil {
			return 0, err
		}
		if n, ok := parseInt(answer); ok {
			return n, nil
		}
		prompt = PromptRetry
	}
}

// parseInt accepts an optional leading minus followed by digits only.
func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	digits := strings.TrimLeft(s, "-")
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
