// Package validator lints an intent dataset against the actions an assistant
// can actually dispatch.
package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/baxter/internal/adapters/intents"
	"github.com/aretw0/baxter/pkg/domain"
	"github.com/aretw0/baxter/pkg/template"
)

// Validate checks ds for duplicate tags, unknown actions, plugin intents bound
// to the wrong key, spans that do not compile, malformed templates and slots in
// responses that no action fills.
// actions are the registered action keys. All problems are reported at once.
func Validate(ds *intents.Dataset, actions []string) error {
	known := make(map[string]bool, len(actions)+1)
	for _, key := range actions {
		known[key] = true
	}
	known[domain.StopwordAction] = true

	// Every setting exists so that any block is expanded and checked.
	engine := template.NewEngine(anySetting{})

	var errs []string
	seen := make(map[string]bool, len(ds.Intents))
	for _, in := range ds.Intents {
		if seen[in.Tag] {
			errs = append(errs, fmt.Sprintf("intent %q: duplicate tag, only the first entry is used", in.Tag))
		}
		seen[in.Tag] = true

		if in.Action != nil {
			if !known[*in.Action] {
				errs = append(errs, fmt.Sprintf("intent %q: action %q is not registered", in.Tag, *in.Action))
			}
		}
		// Without an action the response is sent as written.
		if in.Action == nil {
			for _, tmpl := range in.Responses {
				for _, slot := range template.Placeholders(tmpl) {
					errs = append(errs, fmt.Sprintf("intent %q: response slot {%s} is never filled without an action", in.Tag, slot))
				}
			}
		}
		if name, ok := strings.CutPrefix(in.Tag, domain.PluginTagPrefix); ok {
			want := domain.PluginActionKey(name)
			if in.Action == nil || *in.Action != want {
				errs = append(errs, fmt.Sprintf("intent %q: plugin intents must use action %q", in.Tag, want))
			}
		}

		for _, span := range in.Spans {
			if _, err := regexp.Compile(span); err != nil {
				errs = append(errs, fmt.Sprintf("intent %q: invalid span %q: %v", in.Tag, span, err))
			}
		}

		templates := in.Responses
		if in.ErrorMsg != nil {
			templates = append(templates[:len(templates):len(templates)], *in.ErrorMsg)
		}
		for _, tmpl := range templates {
			if _, err := engine.Render(tmpl); err != nil {
				errs = append(errs, fmt.Sprintf("intent %q: %v", in.Tag, err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
	}
	return nil
}

type anySetting struct{}

func (anySetting) Exists(string) bool { return true }
func (anySetting) Get(string) any     { return "" }
