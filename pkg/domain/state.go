package domain

import "time"

// SessionState is the part of a conversation that survives between messages.
// It is what the caller turns into a Trigger for the next dispatch.
type SessionState struct {
	SessionID  string    `json:"session_id"`
	LastAction *string   `json:"last_action,omitempty"`
	LastInput  *string   `json:"last_input,omitempty"`
	Turns      int       `json:"turns"`
	UpdatedAt  time.Time `json:"updated_at"`
	// Sealed carries the encrypted state when the store encrypts at rest.
	// It is empty in every state handed to the dispatcher.
	Sealed string `json:"sealed,omitempty"`
}

// NewSessionState creates an empty state for the given session.
func NewSessionState(sessionID string) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		UpdatedAt: time.Now(),
	}
}

// Trigger builds the trigger snapshot for the next message.
func (s *SessionState) Trigger(ui Window) Trigger {
	return Trigger{
		UI:         ui,
		LastAction: s.LastAction,
		LastInput:  s.LastInput,
	}
}

// Record stores the outcome of a message. The input is always kept, while the
// action is only kept when it is replayable.
func (s *SessionState) Record(input string, action *string) {
	s.LastInput = &input
	s.LastAction = action
	s.Turns++
	s.UpdatedAt = time.Now()
}

// Clone returns a deep copy.
func (s *SessionState) Clone() *SessionState {
	c := *s
	if s.LastAction != nil {
		c.LastAction = Ptr(*s.LastAction)
	}
	if s.LastInput != nil {
		c.LastInput = Ptr(*s.LastInput)
	}
	return &c
}
