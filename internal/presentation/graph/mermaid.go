package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/baxter"
	"github.com/aretw0/baxter/pkg/domain"
)

// Node IDs of the terminal nodes.
const (
	templateNode = "reply_template"
	silentNode   = "silent"
)

// Overlay highlights session state on the graph.
type Overlay struct {
	// LastAction is the action a repeat would replay.
	LastAction string
}

// GenerateMermaid produces a Mermaid flowchart of how intents reach actions.
// It applies semantic styling:
// - Intent: [/Parallelogram/]
// - Built-in action: [[Subroutine]]
// - Plugin action: {{Hexagon}}
// - Unregistered action: [Rectangle], dashed edge, answered by the template
func GenerateMermaid(routes []baxter.Route, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	actions := make(map[string]baxter.Route)
	usesTemplate, usesSilent := false, false

	for _, r := range routes {
		intentID := "intent_" + sanitizeMermaidID(r.Tag)
		sb.WriteString(fmt.Sprintf("    %s[/\"%s\"/]\n", intentID, r.Tag))

		switch {
		case r.ActionKey == nil:
			usesTemplate = true
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", intentID, templateNode))
		case *r.ActionKey == domain.StopwordAction:
			usesSilent = true
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", intentID, silentNode))
		case !r.Registered:
			usesTemplate = true
			sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n", intentID, *r.ActionKey, templateNode))
		default:
			actions[*r.ActionKey] = r
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", intentID, actionID(*r.ActionKey)))
		}
	}

	keys := make([]string, 0, len(actions))
	for k := range actions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		opener, closer := "[[", "]]"
		if actions[k].Plugin {
			opener, closer = "{{", "}}"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", actionID(k), opener, k, closer))
	}

	if usesTemplate {
		sb.WriteString(fmt.Sprintf("    %s((\"template\"))\n", templateNode))
	}
	if usesSilent {
		sb.WriteString(fmt.Sprintf("    %s((\"no reply\"))\n", silentNode))
	}

	if overlay != nil && overlay.LastAction != "" {
		if _, ok := actions[overlay.LastAction]; ok {
			sb.WriteString("\n    %% Overlay Styles\n")
			// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
			sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
			sb.WriteString(fmt.Sprintf("    class %s current;\n", actionID(overlay.LastAction)))
		}
	}

	return sb.String()
}

func actionID(key string) string {
	return "action_" + sanitizeMermaidID(key)
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}
