package ports

import (
	"context"

	"github.com/aretw0/baxter/pkg/domain"
)

// IntentIndex answers questions about the intent dataset.
type IntentIndex interface {
	// TagExists reports whether an intent with the given tag exists.
	TagExists(tag string) bool

	// ActionExists reports whether any intent is bound to the given action key.
	ActionExists(action string) bool
}

// Classifier turns a user message into a classification.
type Classifier interface {
	IntentIndex

	// Classify predicts the intent of text.
	Classify(ctx context.Context, text string) (domain.Classification, error)

	// GetIntentByAction returns the templates of the intent bound to action.
	// The boolean is false when no intent is bound.
	GetIntentByAction(action string) (domain.Intent, bool)
}

// SpanLocator extracts named parts of a message.
type SpanLocator interface {
	Locate(ctx context.Context, text string) (domain.Spans, error)
}
