package intents_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/baxter/internal/adapters/intents"
	"github.com/aretw0/baxter/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
intents:
  - tag: time
    patterns: ["Wie spät ist es", "Uhrzeit"]
    responses: ["Es ist {hour}:{minutes}", "Jetzt ist {hour} Uhr"]
    action: get_current_time
  - tag: website
    patterns: ["Öffne Webseite"]
    responses: ["Öffne {website}"]
    action: open_website
    error_msg: "Welche Seite?"
    spans: ["öffne (?P<part1>\\S+\\.\\S+)"]
  - tag: thanks
    patterns: ["Danke"]
    responses: ["Bitte"]
    action: null
  - tag: stopword
    patterns: ["ähm"]
    responses: [""]
    action: stopword-detected
`

func parse(t *testing.T) *intents.Dataset {
	t.Helper()
	ds, err := intents.Parse([]byte(sample), false)
	require.NoError(t, err)
	return ds
}

func TestLoad_FormatsByExtension(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "intents.yaml")
	require.NoError(t, os.WriteFile(yml, []byte(sample), 0o644))
	ds, err := intents.Load(yml)
	require.NoError(t, err)
	assert.Len(t, ds.Intents, 4)

	js := filepath.Join(dir, "intents.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"intents":[{"tag":"a","patterns":["x"],"responses":["y"],"action":null,"error_msg":null}]}`), 0o644))
	ds, err = intents.Load(js)
	require.NoError(t, err)
	require.Len(t, ds.Intents, 1)
	assert.Nil(t, ds.Intents[0].Action)
	assert.Equal(t, intents.DefaultErrorMessage, ds.Intents[0].ErrorText())

	_, err = intents.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_RejectsInvalidDatasets(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"No Intents Key", `foo: []`},
		{"Missing Tag", `intents: [{patterns: [], responses: []}]`},
		{"Wrong Type", `intents: [{tag: a, patterns: "x", responses: []}]`},
		{"Malformed", `intents: [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := intents.Parse([]byte(tt.data), false)
			assert.Error(t, err)
		})
	}
}

func TestSampleDataset(t *testing.T) {
	ds, err := intents.Load(filepath.Join("..", "..", "..", "data", "intents.yaml"))
	require.NoError(t, err)

	idx := intents.NewIndex(ds)
	for _, action := range []string{"greet_user", "get_current_time", "tell_joke", "play_song", "open_website", "clear_chat", "repeat", domain.StopwordAction} {
		assert.True(t, idx.ActionExists(action), action)
	}
	assert.True(t, idx.TagExists(domain.PluginTag("get_random_number")))
	assert.True(t, idx.ActionExists(domain.PluginActionKey("get_random_number")))

	_, err = intents.NewSpanLocator(ds)
	require.NoError(t, err)
}

func TestIndex(t *testing.T) {
	idx := intents.NewIndex(parse(t))

	assert.True(t, idx.TagExists("time"))
	assert.False(t, idx.TagExists("weather"))
	assert.True(t, idx.ActionExists("open_website"))
	assert.False(t, idx.ActionExists("thanks"))

	in, ok := idx.GetIntentByAction("get_current_time")
	require.True(t, ok)
	assert.Equal(t, "Es ist {hour}:{minutes}", in.MainTemplate)
	assert.Equal(t, intents.DefaultErrorMessage, in.ErrorTemplate)

	in, ok = idx.GetIntentByAction("open_website")
	require.True(t, ok)
	assert.Equal(t, "Welche Seite?", in.ErrorTemplate)

	_, ok = idx.GetIntentByAction("nope")
	assert.False(t, ok)
}

func TestClassifier(t *testing.T) {
	c := intents.NewClassifier(parse(t), intents.WithRand(func(n int) int { return n - 1 }))
	ctx := context.Background()

	got, err := c.Classify(ctx, "Wie spät ist es?")
	require.NoError(t, err)
	assert.Equal(t, "time", got.Tag)
	assert.InDelta(t, 1.0, got.Confidence, 1e-9)
	assert.Equal(t, "get_current_time", domain.Deref(got.Action))
	assert.Equal(t, "Jetzt ist {hour} Uhr", got.MainText())
	assert.Equal(t, intents.DefaultErrorMessage, got.ErrorText())

	got, err = c.Classify(ctx, "danke")
	require.NoError(t, err)
	assert.Equal(t, "thanks", got.Tag)
	assert.Nil(t, got.Action)

	got, err = c.Classify(ctx, "ähm")
	require.NoError(t, err)
	assert.Equal(t, domain.StopwordAction, domain.Deref(got.Action))

	_, err = c.Classify(ctx, "Quantenchromodynamik")
	assert.ErrorIs(t, err, domain.ErrNoIntent)

	_, err = c.Classify(ctx, "?!")
	assert.ErrorIs(t, err, domain.ErrNoIntent)
}

func TestClassifier_CancelledContext(t *testing.T) {
	c := intents.NewClassifier(parse(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Classify(ctx, "Uhrzeit")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSpanLocator(t *testing.T) {
	l, err := intents.NewSpanLocator(parse(t))
	require.NoError(t, err)

	spans, err := l.Locate(context.Background(), "Bitte Öffne example.com jetzt")
	require.NoError(t, err)
	site, ok := spans.Get("part1")
	assert.True(t, ok)
	assert.Equal(t, "example.com", site)

	spans, err = l.Locate(context.Background(), "mach was")
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestSpanLocator_BadPattern(t *testing.T) {
	ds := &intents.Dataset{Intents: []intents.Intent{{Tag: "x", Spans: []string{"("}}}}
	_, err := intents.NewSpanLocator(ds)
	assert.Error(t, err)
}
