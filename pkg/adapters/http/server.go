package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/baxter/internal/logging"
	"github.com/aretw0/baxter/pkg/domain"
	"github.com/aretw0/baxter/pkg/plugin"
	"github.com/aretw0/baxter/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Chat is the conversation side of the assistant.
type Chat interface {
	Conversation(sessionID string) *session.Conversation
	Close(sessionID string)
}

// Catalog describes what the assistant can do.
type Catalog interface {
	ActionKeys() []string
	Plugins() []plugin.Info
}

// Server serves the chat API.
type Server struct {
	chat     Chat
	catalog  Catalog
	streams  *StreamManager
	logger   *slog.Logger
	version  string
	gatherer prometheus.Gatherer
	timeout  time.Duration
	upgrader websocket.Upgrader
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithMetrics exposes gatherer on GET /metrics.
func WithMetrics(gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = gatherer
	}
}

// WithReplyTimeout bounds how long a request waits for a reply.
// The action keeps running; its reply is still streamed to subscribers.
func WithReplyTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// NewHandler creates the HTTP handler.
func NewHandler(chat Chat, catalog Catalog, opts ...Option) http.Handler {
	s := &Server{
		chat:    chat,
		catalog: catalog,
		streams: NewStreamManager(),
		logger:  logging.NewNop(),
		version: "dev",
		timeout: 2 * time.Minute,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)
	r.Get("/info", s.info)
	r.Get("/actions", s.actions)
	r.Get("/plugins", s.plugins)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/sessions", s.createSession)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Delete("/", s.closeSession)
		r.Post("/messages", s.postMessage)
		r.Get("/events", s.subscribeEvents)
		r.Get("/ws", s.serveWebsocket)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MessageRequest is the body of POST /sessions/{id}/messages and of every
// websocket frame sent by the client.
type MessageRequest struct {
	Text string `json:"text"`
}

// ErrorResponse is returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PluginsResponse is the body of GET /plugins.
type PluginsResponse struct {
	Count   int           `json:"count"`
	Plugins []plugin.Info `json:"plugins"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "err", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrInvalidUTF8):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "baxter-http",
		"version": s.version,
	})
}

func (s *Server) actions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalog.ActionKeys())
}

func (s *Server) plugins(w http.ResponseWriter, r *http.Request) {
	infos := s.catalog.Plugins()
	if infos == nil {
		infos = []plugin.Info{}
	}
	s.writeJSON(w, http.StatusOK, PluginsResponse{Count: len(infos), Plugins: infos})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id := session.NewSessionID()
	s.chat.Conversation(id)
	s.writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

func (s *Server) closeSession(w http.ResponseWriter, r *http.Request) {
	s.chat.Close(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) send(ctx context.Context, sessionID, text string) (session.Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.chat.Conversation(sessionID).Send(ctx, text)
	if err != nil {
		return reply, err
	}
	if data, err := json.Marshal(reply); err == nil {
		s.streams.Broadcast(sessionID, string(data))
	}
	return reply, nil
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	var body MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("Invalid request body", "err", err)
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	reply, err := s.send(r.Context(), chi.URLParam(r, "sessionID"), body.Text)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, reply)
}

// subscribeEvents streams every reply of a session as server-sent events.
func (s *Server) subscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	ch, cancel := s.streams.Subscribe(sessionID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: reply\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// serveWebsocket runs a conversation over a websocket: every text frame is a
// MessageRequest, every answer a Reply or an ErrorResponse.
func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	sessionID := chi.URLParam(r, "sessionID")
	for {
		var msg MessageRequest
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("Websocket read ended", "session_id", sessionID, "err", err)
			}
			return
		}

		reply, err := s.send(r.Context(), sessionID, msg.Text)
		var out any = reply
		if err != nil {
			out = ErrorResponse{Error: err.Error()}
		}
		if err := conn.WriteJSON(out); err != nil {
			s.logger.Debug("Websocket write failed", "session_id", sessionID, "err", err)
			return
		}
	}
}
