// Package testutils holds fakes shared by adapter tests.
package testutils

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/baxter/pkg/action"
	"github.com/aretw0/baxter/pkg/adapters/memory"
	"github.com/aretw0/baxter/pkg/domain"
	"github.com/aretw0/baxter/pkg/session"
)

// WordClassifier maps the first word of a message to an action of the same
// name, with "main" and "error" as templates. Every tag and action exists.
type WordClassifier struct{}

func (WordClassifier) Classify(ctx context.Context, text string) (domain.Classification, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return domain.Classification{}, domain.ErrNoIntent
	}
	return domain.Classification{
		Tag:           words[0],
		Confidence:    1,
		Action:        domain.Ptr(words[0]),
		MainTemplate:  domain.Ptr("main"),
		ErrorTemplate: domain.Ptr("error"),
	}, nil
}

func (WordClassifier) TagExists(tag string) bool  { return true }
func (WordClassifier) ActionExists(a string) bool { return true }

func (WordClassifier) GetIntentByAction(a string) (domain.Intent, bool) {
	return domain.Intent{MainTemplate: "main", ErrorTemplate: "error"}, true
}

// NewChat builds a chat over an in-memory store that dispatches to reg.
// Sessions are closed when the test ends.
func NewChat(t *testing.T, reg *action.Registry, opts ...session.ChatOption) *session.Chat {
	t.Helper()
	chat := session.NewChat(WordClassifier{}, action.NewDispatcher(reg), session.NewManager(memory.NewStore()), opts...)
	t.Cleanup(chat.CloseAll)
	return chat
}
