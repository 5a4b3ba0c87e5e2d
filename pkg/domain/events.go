package domain

import (
	"context"
	"time"
)

// Outcome is how a dispatch was resolved.
type Outcome string

const (
	OutcomeStopword  Outcome = "stopword"  // Noise, no reply
	OutcomeNoAction  Outcome = "no_action" // Intent without action, template returned
	OutcomeUnbound   Outcome = "unbound"   // Action key with no handler, template returned
	OutcomeHandled   Outcome = "handled"   // Handler produced the response
	OutcomeFailed    Outcome = "failed"    // Handler failed, error template returned
	OutcomeViolation Outcome = "violation" // Broken registration
)

// DispatchEvent describes one completed dispatch.
type DispatchEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	ActionKey string        `json:"action_key,omitempty"`
	Outcome   Outcome       `json:"outcome"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// DispatchHooks defines callbacks for dispatcher observability.
type DispatchHooks struct {
	OnDispatch func(context.Context, *DispatchEvent)
}
