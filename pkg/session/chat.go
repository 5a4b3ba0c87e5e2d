package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/baxter/internal/logging"
	"github.com/aretw0/baxter/pkg/action"
	"github.com/aretw0/baxter/pkg/domain"
	"github.com/aretw0/baxter/pkg/ports"
	"github.com/google/uuid"
)

// DefaultClassifierError answers messages the classifier cannot handle.
const DefaultClassifierError = "Sorry, I did not understand that. Maybe your input was too long."

// Reply is what the user sees after a message.
type Reply struct {
	SessionID string `json:"session_id"`
	// Text is nil when the assistant stays silent.
	Text *string `json:"text"`
	// Prompt marks Text as a question; the next message answers it.
	Prompt bool `json:"prompt,omitempty"`
	// Messages are intermediate messages sent before Text.
	Messages   []string `json:"messages,omitempty"`
	Cleared    bool     `json:"cleared,omitempty"`
	Tag        string   `json:"tag,omitempty"`
	Action     *string  `json:"action,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
}

// Chat runs conversational turns.
type Chat struct {
	classifier      ports.Classifier
	dispatcher      *action.Dispatcher
	manager         *Manager
	logger          *slog.Logger
	classifierError string

	mu            sync.Mutex
	conversations map[string]*Conversation
}

// ChatOption configures a Chat.
type ChatOption func(*Chat)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ChatOption {
	return func(c *Chat) {
		c.logger = logger
	}
}

// WithClassifierError sets the reply used when classification fails.
func WithClassifierError(text string) ChatOption {
	return func(c *Chat) {
		if text != "" {
			c.classifierError = text
		}
	}
}

// NewChat creates a chat over the given collaborators.
func NewChat(classifier ports.Classifier, dispatcher *action.Dispatcher, manager *Manager, opts ...ChatOption) *Chat {
	c := &Chat{
		classifier:      classifier,
		dispatcher:      dispatcher,
		manager:         manager,
		logger:          logging.NewNop(),
		classifierError: DefaultClassifierError,
		conversations:   make(map[string]*Conversation),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewSessionID returns a fresh random session ID.
func NewSessionID() string {
	return uuid.NewString()
}

// Manager returns the session manager.
func (c *Chat) Manager() *Manager {
	return c.manager
}

// Process handles one message synchronously. ui receives the side effects
// of the action and answers its questions; it may be nil.
// The only errors are store failures and handler contract violations.
func (c *Chat) Process(ctx context.Context, sessionID, input string, ui domain.Window) (Reply, error) {
	reply := Reply{SessionID: sessionID}

	err := c.manager.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, err := c.manager.loadOrStart(ctx, sessionID)
		if err != nil {
			return err
		}

		cls, err := c.classifier.Classify(ctx, input)
		if err != nil {
			c.logger.Debug("Classification failed", "session_id", sessionID, "err", err)
			reply.Text = domain.Ptr(c.classifierError)
			return nil
		}
		reply.Tag = cls.Tag
		reply.Action = cls.Action
		reply.Confidence = cls.Confidence

		resp, err := c.dispatcher.Dispatch(ctx, input, cls.Action, cls.MainText(), cls.ErrorText(), state.Trigger(ui))
		if err != nil {
			return err
		}
		if resp != nil && *resp != "" {
			reply.Text = resp
		}

		state.Record(input, c.nextLastAction(state.LastAction, cls.Action))
		return c.manager.store.Save(ctx, sessionID, state)
	})
	return reply, err
}

// nextLastAction keeps the previous action across a repeat and forgets it for
// messages without a registered action.
func (c *Chat) nextLastAction(prev, current *string) *string {
	if current == nil || !c.dispatcher.ActionExists(*current) {
		return nil
	}
	if *current == domain.RepeatAction {
		return prev
	}
	return current
}

// Conversation returns the open conversation for sessionID, opening it if
// needed.
func (c *Chat) Conversation(sessionID string) *Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	conv, ok := c.conversations[sessionID]
	if !ok {
		conv = newConversation(c, sessionID)
		c.conversations[sessionID] = conv
	}
	return conv
}

// Close cancels any pending action of the session's conversation and forgets it.
// The persisted state is kept.
func (c *Chat) Close(sessionID string) {
	c.mu.Lock()
	conv, ok := c.conversations[sessionID]
	delete(c.conversations, sessionID)
	c.mu.Unlock()
	if ok {
		conv.close()
	}
}

// CloseAll closes every open conversation.
func (c *Chat) CloseAll() {
	c.mu.Lock()
	convs := c.conversations
	c.conversations = make(map[string]*Conversation)
	c.mu.Unlock()
	for _, conv := range convs {
		conv.close()
	}
}
