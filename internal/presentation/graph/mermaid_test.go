package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/baxter"
	"github.com/aretw0/baxter/internal/presentation/graph"
	"github.com/aretw0/baxter/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		routes      []baxter.Route
		overlay     *graph.Overlay
		contains    []string
		notContains []string
	}{
		{
			name:   "Built-in action",
			routes: []baxter.Route{{Tag: "time", ActionKey: domain.Ptr("get_current_time"), Registered: true}},
			contains: []string{
				`intent_time[/"time"/]`,
				"intent_time --> action_get_current_time",
				`action_get_current_time[["get_current_time"]]`,
			},
			notContains: []string{"reply_template"},
		},
		{
			name: "Plugin action",
			routes: []baxter.Route{{
				Tag:        "plugin-dice",
				ActionKey:  domain.Ptr("plugin-dice-action"),
				Registered: true,
				Plugin:     true,
			}},
			contains: []string{
				"intent_plugin_dice --> action_plugin_dice_action",
				`action_plugin_dice_action{{"plugin-dice-action"}}`,
			},
		},
		{
			name: "Template and unbound actions share the reply node",
			routes: []baxter.Route{
				{Tag: "thanks"},
				{Tag: "weather", ActionKey: domain.Ptr("get_weather")},
			},
			contains: []string{
				"intent_thanks --> reply_template",
				`intent_weather -. "get_weather" .-> reply_template`,
				`reply_template(("template"))`,
			},
			notContains: []string{"action_get_weather"},
		},
		{
			name:     "Stopword is silent",
			routes:   []baxter.Route{{Tag: "noise", ActionKey: domain.Ptr(domain.StopwordAction), Registered: true}},
			contains: []string{"intent_noise --> silent", `silent(("no reply"))`},
		},
		{
			name: "Overlay marks the last action",
			routes: []baxter.Route{
				{Tag: "greeting", ActionKey: domain.Ptr("greet_user"), Registered: true},
			},
			overlay:  &graph.Overlay{LastAction: "greet_user"},
			contains: []string{"classDef current", "class action_greet_user current;"},
		},
		{
			name: "Overlay ignores unknown actions",
			routes: []baxter.Route{
				{Tag: "greeting", ActionKey: domain.Ptr("greet_user"), Registered: true},
			},
			overlay:     &graph.Overlay{LastAction: "play_song"},
			notContains: []string{"classDef current"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.GenerateMermaid(tt.routes, tt.overlay)
			assert.True(t, strings.HasPrefix(out, "graph LR\n"))
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}
