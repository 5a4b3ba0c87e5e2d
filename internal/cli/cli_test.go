package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/baxter/pkg/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIntents = `
intents:
  - tag: greeting
    patterns: ["Hallo"]
    responses: ["Hallo%if_name% {name}%if_name_end%!"]
    action: greet_user
  - tag: plugin-get_random_number
    patterns: ["Zufallszahl"]
    responses: ["Deine Zahl ist {number}."]
    action: plugin-get_random_number-action
`

// setupProject writes a dataset and a baxter.yaml into a temp dir.
func setupProject(t *testing.T, extra string) Options {
	t.Helper()
	dir := t.TempDir()
	intentsPath := filepath.Join(dir, "intents.yaml")
	require.NoError(t, os.WriteFile(intentsPath, []byte(testIntents), 0o644))

	cfg := fmt.Sprintf("intents_path: %s\nplugins_dir: %s\n%s", intentsPath, filepath.Join(dir, "plugins"), extra)
	cfgPath := filepath.Join(dir, "baxter.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	return Options{ConfigFile: cfgPath, EnvFiles: []string{}}
}

func TestRunChat_Headless(t *testing.T) {
	opts := setupProject(t, "name: Ada\n")
	var out bytes.Buffer

	err := RunChat(context.Background(), ChatOptions{
		Options: opts,
		In:      strings.NewReader("Hallo\nexit\n"),
		Out:     &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hallo Ada!\nBye!\n", out.String())
}

func TestRunChat_MissingDataset(t *testing.T) {
	opts := setupProject(t, "")
	require.NoError(t, os.WriteFile(opts.ConfigFile, []byte("intents_path: /nonexistent/intents.yaml\n"), 0o644))

	err := RunChat(context.Background(), ChatOptions{
		Options: opts,
		In:      strings.NewReader(""),
		Out:     &bytes.Buffer{},
	})
	assert.ErrorContains(t, err, "failed to load intents")
}

func TestListActions(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, ListActions(context.Background(), setupProject(t, ""), &out))

	keys := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Contains(t, keys, "greet_user")
	assert.Contains(t, keys, "plugin-get_random_number-action")
}

func TestListPlugins(t *testing.T) {
	opts := setupProject(t, "")

	var table bytes.Buffer
	require.NoError(t, ListPlugins(context.Background(), opts, &table, false))
	assert.Contains(t, table.String(), "NAME")
	assert.Contains(t, table.String(), "get_random_number")
	assert.Contains(t, table.String(), "1 plugin(s) loaded")

	var raw bytes.Buffer
	require.NoError(t, ListPlugins(context.Background(), opts, &raw, true))
	var infos []plugin.Info
	require.NoError(t, json.Unmarshal(raw.Bytes(), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "plugin-get_random_number", infos[0].Tag)
}

func TestPrintGraph(t *testing.T) {
	opts := setupProject(t, "")

	var out bytes.Buffer
	require.NoError(t, PrintGraph(context.Background(), opts, "", &out))
	assert.Contains(t, out.String(), "intent_greeting --> action_greet_user")
	assert.Contains(t, out.String(), `action_plugin_get_random_number_action{{"plugin-get_random_number-action"}}`)

	err := PrintGraph(context.Background(), opts, "missing", &out)
	assert.ErrorContains(t, err, `session "missing" not found`)
}

func TestValidate(t *testing.T) {
	opts := setupProject(t, "")

	var out bytes.Buffer
	require.NoError(t, Validate(context.Background(), opts, &out))
	assert.Contains(t, out.String(), "2 intents")

	broken := testIntents + `  - tag: weather
    patterns: ["Wetter"]
    responses: ["Sonnig."]
    action: get_weather
`
	dir := filepath.Dir(opts.ConfigFile)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intents.yaml"), []byte(broken), 0o644))

	err := Validate(context.Background(), opts, &out)
	assert.ErrorContains(t, err, `action "get_weather" is not registered`)
}

func TestNewServer(t *testing.T) {
	opts := setupProject(t, "")
	opts.Metrics = true
	a, logger, err := createAssistant(context.Background(), opts, false)
	require.NoError(t, err)
	defer a.Close()

	srv := httptest.NewServer(newServer(a, "", logger).Handler)
	defer srv.Close()

	for _, path := range []string{"/health", "/metrics", "/plugins"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestListen_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- listen(ctx, srv, slog.Default()) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}

func TestCreateLogger(t *testing.T) {
	ctx := context.Background()
	assert.True(t, createLogger("error", true, true).Enabled(ctx, slog.LevelDebug))
	assert.False(t, createLogger("debug", false, true).Enabled(ctx, slog.LevelDebug))
	assert.False(t, createLogger("warn", false, false).Enabled(ctx, slog.LevelInfo))
	assert.True(t, createLogger("warn", false, false).Enabled(ctx, slog.LevelWarn))
}

func TestSignalContext_Cancel(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.Cancel()

	select {
	case <-sc.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled")
	}
	assert.Nil(t, sc.Signal())
}
