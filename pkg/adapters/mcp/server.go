package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/baxter/internal/logging"
	"github.com/aretw0/baxter/pkg/plugin"
	"github.com/aretw0/baxter/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// ReplyResponse is the structured result of send_message.
type ReplyResponse struct {
	SessionID string   `json:"session_id" jsonschema_description:"Session to use for follow-up messages"`
	Text      *string  `json:"text" jsonschema_description:"Assistant reply; null when the assistant stays silent"`
	Prompt    bool     `json:"prompt" jsonschema_description:"True when the reply is a question the next message answers"`
	Messages  []string `json:"messages,omitempty" jsonschema_description:"Intermediate messages sent before the reply"`
	Cleared   bool     `json:"cleared,omitempty" jsonschema_description:"The action asked to clear the chat"`
}

// CloseResponse is the structured result of close_session.
type CloseResponse struct {
	SessionID string `json:"session_id"`
	Closed    bool   `json:"closed"`
}

// ActionsResponse lists registered action keys.
type ActionsResponse struct {
	Actions []string `json:"actions" jsonschema_description:"Registered action keys"`
}

// PluginsResponse lists accepted plugins.
type PluginsResponse struct {
	Count   int           `json:"count"`
	Plugins []plugin.Info `json:"plugins"`
}

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

// Server exposes the assistant as an MCP server.
type Server struct {
	chat      Chat
	catalog   Catalog
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(chat Chat, catalog Catalog, version string, opts ...Option) *Server {
	s := &Server{
		chat:      chat,
		catalog:   catalog,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("baxter-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	sendTool := mcp.NewTool("send_message",
		mcp.WithDescription("Send a chat message to the assistant. Omit session_id to start a new session."),
		mcp.WithString("text", mcp.Required(), mcp.Description("User message")),
		mcp.WithString("session_id", mcp.Description("Session returned by an earlier call (optional)")),
		mcp.WithOutputSchema[ReplyResponse](),
	)
	s.mcpServer.AddTool(sendTool, mcp.NewStructuredToolHandler(s.handleSendMessage))

	closeTool := mcp.NewTool("close_session",
		mcp.WithDescription("End a session and abandon any pending question."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to close")),
		mcp.WithOutputSchema[CloseResponse](),
	)
	s.mcpServer.AddTool(closeTool, mcp.NewStructuredToolHandler(s.handleCloseSession))

	s.mcpServer.AddTool(mcp.NewTool("list_actions",
		mcp.WithDescription("List the registered action keys."),
		mcp.WithOutputSchema[ActionsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListActions))

	s.mcpServer.AddTool(mcp.NewTool("list_plugins",
		mcp.WithDescription("List the loaded plugins."),
		mcp.WithOutputSchema[PluginsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListPlugins))
}

func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ReplyResponse, error) {
	text, _ := args["text"].(string)
	id, _ := args["session_id"].(string)
	if id == "" {
		id = session.NewSessionID()
	}

	reply, err := s.chat.Conversation(id).Send(ctx, text)
	if err != nil {
		s.logger.Warn("MCP send_message failed", "session_id", id, "err", err)
		return ReplyResponse{}, fmt.Errorf("send failed: %w", err)
	}

	return ReplyResponse{
		SessionID: id,
		Text:      reply.Text,
		Prompt:    reply.Prompt,
		Messages:  reply.Messages,
		Cleared:   reply.Cleared,
	}, nil
}

func (s *Server) handleCloseSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CloseResponse, error) {
	id, _ := args["session_id"].(string)
	if id == "" {
		return CloseResponse{}, errors.New("session_id is required")
	}
	s.chat.Close(id)
	return CloseResponse{SessionID: id, Closed: true}, nil
}

func (s *Server) handleListActions(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ActionsResponse, error) {
	return ActionsResponse{Actions: s.catalog.ActionKeys()}, nil
}

func (s *Server) handleListPlugins(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PluginsResponse, error) {
	infos := s.catalog.Plugins()
	if infos == nil {
		infos = []plugin.Info{}
	}
	return PluginsResponse{Count: len(infos), Plugins: infos}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("baxter://actions", "Registered Actions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.catalog.ActionKeys())
		if err != nil {
			return nil, fmt.Errorf("failed to encode actions: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "baxter://actions",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
