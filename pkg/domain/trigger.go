package domain

import "context"

// Window is the chat surface a message came from.
// Only leaf actions talk to it; the dispatcher treats it as opaque.
type Window interface {
	// SendMessage pushes an assistant message to the chat without ending the action.
	SendMessage(ctx context.Context, text string) error

	// ClearChat wipes the visible conversation.
	ClearChat(ctx context.Context) error

	// RequestInput shows prompt and blocks until the user sends the next message.
	RequestInput(ctx context.Context, prompt string) (string, error)
}

// Trigger is the immutable snapshot of the previous exchange, rebuilt by the
// caller for every message and passed by value into each action.
type Trigger struct {
	UI         Window
	LastAction *string
	LastInput  *string
}

// WithLastAction returns a copy of t with LastAction replaced.
func (t Trigger) WithLastAction(action string) Trigger {
	t.LastAction = &action
	return t
}

// Classification is what the classifier produced for a single message.
type Classification struct {
	Tag           string  `json:"tag"`
	Confidence    float64 `json:"confidence"`
	Action        *string `json:"action,omitempty"`
	MainTemplate  *string `json:"main_template,omitempty"`
	ErrorTemplate *string `json:"error_template,omitempty"`
}

// MainText returns the main template or "" when the classifier supplied none.
func (c Classification) MainText() string {
	if c.MainTemplate == nil {
		return ""
	}
	return *c.MainTemplate
}

// ErrorText returns the error template or "" when the classifier supplied none.
func (c Classification) ErrorText() string {
	if c.ErrorTemplate == nil {
		return ""
	}
	return *c.ErrorTemplate
}

// Intent is the read-only projection of an intent used for replays.
type Intent struct {
	MainTemplate  string `json:"main_template"`
	ErrorTemplate string `json:"error_template"`
}

// Spans are the named parts a span locator found in a message
// (for example "part1" holding a song name).
type Spans map[string]string

// Get returns the trimmed span value and whether it was present and non-empty.
func (s Spans) Get(name string) (string, bool) {
	v, ok := s[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Ptr returns a pointer to s. Handy for the optional string fields above.
func Ptr(s string) *string {
	return &s
}

// Deref returns *s, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
