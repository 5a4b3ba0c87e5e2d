package http_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/baxter/internal/testutils"
	"github.com/aretw0/baxter/pkg/action"
	baxterhttp "github.com/aretw0/baxter/pkg/adapters/http"
	"github.com/aretw0/baxter/pkg/plugin"
	"github.com/aretw0/baxter/pkg/session"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalog struct{}

func (catalog) ActionKeys() []string { return []string{"ask", "echo"} }
func (catalog) Plugins() []plugin.Info {
	return []plugin.Info{{Name: "dice", Version: 1, Tag: "plugin-dice", ActionKey: "plugin-dice-action", Source: "builtin"}}
}

func newServer(t *testing.T, opts ...baxterhttp.Option) *httptest.Server {
	t.Helper()
	reg := action.NewRegistry()
	reg.Register("echo", action.HandlerFunc(func(ctx context.Context, call action.Call) (string, error) {
		return "echo:" + call.Input, nil
	}))
	reg.Register("ask", action.HandlerFunc(func(ctx context.Context, call action.Call) (string, error) {
		answer, err := call.Ask(ctx, "Wie heißt du?")
		if err != nil {
			return "", err
		}
		return "Hallo " + answer, nil
	}))
	reg.Register("slow", action.HandlerFunc(func(ctx context.Context, call action.Call) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}))
	reg.Register("broken", nil)

	chat := testutils.NewChat(t, reg)

	srv := httptest.NewServer(baxterhttp.NewHandler(chat, catalog{}, opts...))
	t.Cleanup(srv.Close)
	return srv
}

func postMessage(t *testing.T, srv *httptest.Server, sessionID, text string) (*http.Response, session.Reply) {
	t.Helper()
	body, _ := json.Marshal(baxterhttp.MessageRequest{Text: text})
	resp, err := http.Post(srv.URL+"/sessions/"+sessionID+"/messages", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var reply session.Reply
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	}
	return resp, reply
}

func TestHealthAndInfo(t *testing.T) {
	srv := newServer(t, baxterhttp.WithVersion("1.2.3"))

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = http.Get(srv.URL + "/info")
	require.NoError(t, err)
	defer resp.Body.Close()
	var info map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "1.2.3", info["version"])
}

func TestCatalogRoutes(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/actions")
	require.NoError(t, err)
	var keys []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&keys))
	resp.Body.Close()
	assert.Equal(t, []string{"ask", "echo"}, keys)

	resp, err = http.Get(srv.URL + "/plugins")
	require.NoError(t, err)
	var plugins baxterhttp.PluginsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&plugins))
	resp.Body.Close()
	assert.Equal(t, 1, plugins.Count)
	assert.Equal(t, "plugin-dice-action", plugins.Plugins[0].ActionKey)
}

func TestSessionLifecycle(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	var created map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	id := created["session_id"]
	require.NotEmpty(t, id)

	resp, reply := postMessage(t, srv, id, "echo hallo")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, reply.Text)
	assert.Equal(t, "echo:echo hallo", *reply.Text)
	assert.Equal(t, id, reply.SessionID)

	resp, reply = postMessage(t, srv, id, "ask")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, reply.Prompt)

	resp, reply = postMessage(t, srv, id, "Ada")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, reply.Text)
	assert.Equal(t, "Hallo Ada", *reply.Text)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/"+id, nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestPostMessage_Errors(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+"/sessions/s1/messages", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postMessage(t, srv, "s1", strings.Repeat("x", session.DefaultMaxInputSize+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	resp, _ = postMessage(t, srv, "s1", "broken")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestPostMessage_Timeout(t *testing.T) {
	srv := newServer(t, baxterhttp.WithReplyTimeout(50*time.Millisecond))

	resp, _ := postMessage(t, srv, "s1", "slow")
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)

	// The action is still running and is not waiting for an answer.
	resp, _ = postMessage(t, srv, "s1", "echo again")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestEvents_StreamReplies(t *testing.T) {
	srv := newServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sessions/s1/events", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: ping", lines.Text())

	post, _ := postMessage(t, srv, "s1", "echo stream")
	require.Equal(t, http.StatusOK, post.StatusCode)

	var data string
	for lines.Scan() {
		if strings.HasPrefix(lines.Text(), "data: {") {
			data = strings.TrimPrefix(lines.Text(), "data: ")
			break
		}
	}
	var reply session.Reply
	require.NoError(t, json.Unmarshal([]byte(data), &reply))
	require.NotNil(t, reply.Text)
	assert.Equal(t, "echo:echo stream", *reply.Text)
}

func TestWebsocket(t *testing.T) {
	srv := newServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sessions/ws-1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(baxterhttp.MessageRequest{Text: "ask"}))
	var reply session.Reply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.True(t, reply.Prompt)
	require.NotNil(t, reply.Text)
	assert.Equal(t, "Wie heißt du?", *reply.Text)

	require.NoError(t, conn.WriteJSON(baxterhttp.MessageRequest{Text: "Grace"}))
	reply = session.Reply{}
	require.NoError(t, conn.ReadJSON(&reply))
	require.NotNil(t, reply.Text)
	assert.Equal(t, "Hallo Grace", *reply.Text)

	require.NoError(t, conn.WriteJSON(baxterhttp.MessageRequest{Text: strings.Repeat("x", session.DefaultMaxInputSize+1)}))
	var failure baxterhttp.ErrorResponse
	require.NoError(t, conn.ReadJSON(&failure))
	assert.Contains(t, failure.Error, "maximum allowed size")
}

func TestMetricsRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "baxter_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	srv := newServer(t, baxterhttp.WithMetrics(reg))
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	assert.Contains(t, buf.String(), "baxter_test_total 1")

	srv = newServer(t)
	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
