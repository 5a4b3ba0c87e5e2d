package validator

import (
	"testing"

	"github.com/aretw0/baxter/internal/adapters/intents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidate_Valid(t *testing.T) {
	ds := &intents.Dataset{Intents: []intents.Intent{
		{Tag: "greeting", Patterns: []string{"hallo"}, Responses: []string{"Hallo!"}, Action: strPtr("greet_user")},
		{Tag: "smalltalk", Patterns: []string{"wie geht's"}, Responses: []string{"Gut, danke!"}},
		{Tag: "time", Patterns: []string{"uhrzeit"}, Responses: []string{"Es ist {hour}:{minutes} Uhr."}, Action: strPtr("get_current_time")},
		{Tag: "noise", Patterns: []string{"ähm"}, Action: strPtr("stopword-detected")},
		{Tag: "plugin-dice", Patterns: []string{"würfel"}, Responses: []string{"{result}"}, Action: strPtr("plugin-dice-action")},
		{Tag: "name", Patterns: []string{"ich heiße"}, Responses: []string{"ok"}, Spans: []string{`heiße (?P<part1>\w+)`}},
	}}

	assert.NoError(t, Validate(ds, []string{"greet_user", "get_current_time", "plugin-dice-action"}))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		intent intents.Intent
		want   string
	}{
		{
			name:   "unregistered action",
			intent: intents.Intent{Tag: "weather", Action: strPtr("get_weather")},
			want:   `action "get_weather" is not registered`,
		},
		{
			name:   "plugin with wrong key",
			intent: intents.Intent{Tag: "plugin-dice", Action: strPtr("greet_user")},
			want:   `plugin intents must use action "plugin-dice-action"`,
		},
		{
			name:   "plugin without action",
			intent: intents.Intent{Tag: "plugin-dice"},
			want:   `plugin intents must use action "plugin-dice-action"`,
		},
		{
			name:   "slot without action",
			intent: intents.Intent{Tag: "smalltalk", Responses: []string{"Hallo {name}!"}},
			want:   "response slot {name} is never filled without an action",
		},
		{
			name:   "bad span",
			intent: intents.Intent{Tag: "name", Spans: []string{`(?P<part1>`}},
			want:   "invalid span",
		},
		{
			name:   "closer before opener",
			intent: intents.Intent{Tag: "greeting", Responses: []string{"%if_name_end% {name} %if_name%"}, Action: strPtr("greet_user")},
			want:   "template syntax error",
		},
		{
			name:   "block without placeholder",
			intent: intents.Intent{Tag: "greeting", ErrorMsg: strPtr("%if_name%Fehler%if_name_end%")},
			want:   "no placeholder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := &intents.Dataset{Intents: []intents.Intent{tt.intent}}
			err := Validate(ds, []string{"greet_user"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "found 1 errors")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	ds := &intents.Dataset{Intents: []intents.Intent{
		{Tag: "greeting", Action: strPtr("greet_user")},
		{Tag: "greeting", Action: strPtr("wave")},
	}}

	err := Validate(ds, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 3 errors")
	assert.Contains(t, err.Error(), `intent "greeting": duplicate tag`)
}
