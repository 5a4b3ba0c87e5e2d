package session

import (
	"context"
	"errors"
	"sync"
)

// ErrBusy is returned when a message arrives while the previous one is still
// being processed and it does not finish before the caller gives up.
var ErrBusy = errors.New("session is busy")

// Conversation is an open session whose actions may ask the user questions.
// Send returns at the next point the user has to act: a final reply or a
// question. The message after a question is routed to the asking action.
type Conversation struct {
	id     string
	chat   *Chat
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	turn *turn
}

func newConversation(chat *Chat, id string) *Conversation {
	ctx, cancel := context.WithCancel(context.Background())
	return &Conversation{id: id, chat: chat, ctx: ctx, cancel: cancel}
}

// ID returns the session ID.
func (c *Conversation) ID() string {
	return c.id
}

// Pending reports whether an action is waiting for an answer.
func (c *Conversation) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.turn != nil && c.turn.awaiting
}

// Send delivers a user message.
func (c *Conversation) Send(ctx context.Context, text string) (Reply, error) {
	clean, err := SanitizeInput(text)
	if err != nil {
		return Reply{SessionID: c.id}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ctx.Err(); err != nil {
		return Reply{SessionID: c.id}, err
	}

	if c.turn != nil && !c.turn.awaiting {
		// The caller of the previous message stopped waiting. Catch up with
		// its turn: a question is returned as is, a finished result is stale.
		reply, err := c.wait(ctx)
		switch {
		case c.turn == nil:
			if err != nil {
				c.chat.logger.Warn("Abandoned turn failed", "session_id", c.id, "err", err)
			}
		case c.turn.awaiting:
			return reply, nil
		default:
			return Reply{SessionID: c.id}, ErrBusy
		}
	}

	if c.turn == nil {
		c.turn = c.start(clean)
	} else {
		select {
		case c.turn.answers <- clean:
			c.turn.awaiting = false
		case <-ctx.Done():
			return Reply{SessionID: c.id}, ctx.Err()
		}
	}
	return c.wait(ctx)
}

func (c *Conversation) start(input string) *turn {
	t := &turn{
		prompts: make(chan string),
		answers: make(chan string),
		done:    make(chan result, 1),
	}
	go func() {
		reply, err := c.chat.Process(c.ctx, c.id, input, t)
		t.done <- result{reply: reply, err: err}
	}()
	return t
}

// wait blocks until the turn asks a question or finishes. Callers hold c.mu.
func (c *Conversation) wait(ctx context.Context) (Reply, error) {
	t := c.turn
	select {
	case prompt := <-t.prompts:
		t.awaiting = true
		reply := Reply{SessionID: c.id, Text: &prompt, Prompt: true}
		t.drain(&reply)
		return reply, nil
	case res := <-t.done:
		c.turn = nil
		t.drain(&res.reply)
		return res.reply, res.err
	case <-ctx.Done():
		return Reply{SessionID: c.id}, ctx.Err()
	}
}

func (c *Conversation) close() {
	c.cancel()
}

type result struct {
	reply Reply
	err   error
}

// turn is one message in flight. It is the window its action talks to.
type turn struct {
	prompts chan string
	answers chan string
	done    chan result

	// awaiting is guarded by Conversation.mu.
	awaiting bool

	mu       sync.Mutex
	messages []string
	cleared  bool
}

func (t *turn) SendMessage(ctx context.Context, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, text)
	return nil
}

func (t *turn) ClearChat(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = nil
	t.cleared = true
	return nil
}

func (t *turn) RequestInput(ctx context.Context, prompt string) (string, error) {
	select {
	case t.prompts <- prompt:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	select {
	case answer := <-t.answers:
		return answer, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (t *turn) drain(reply *Reply) {
	t.mu.Lock()
	defer t.mu.Unlock()
	reply.Messages = append(reply.Messages, t.messages...)
	reply.Cleared = reply.Cleared || t.cleared
	t.messages = nil
	t.cleared = false
}
