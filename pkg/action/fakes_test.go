package action_test

import (
	"context"
	"errors"
	"sync"

	"github.com/aretw0/baxter/pkg/domain"
)

type fakeClassifier struct {
	intents map[string]domain.Intent
	tags    map[string]bool
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (domain.Classification, error) {
	return domain.Classification{}, errors.New("not used")
}

func (f *fakeClassifier) TagExists(tag string) bool { return f.tags[tag] }

func (f *fakeClassifier) ActionExists(action string) bool {
	_, ok := f.intents[action]
	return ok
}

func (f *fakeClassifier) GetIntentByAction(action string) (domain.Intent, bool) {
	i, ok := f.intents[action]
	return i, ok
}

type settings map[string]any

func (s settings) Exists(key string) bool {
	_, ok := s[key]
	return ok
}

func (s settings) Get(key string) any { return s[key] }

// scriptedWindow answers RequestInput from a fixed list of replies.
type scriptedWindow struct {
	mu       sync.Mutex
	replies  []string
	prompts  []string
	messages []string
	cleared  int
}

func (w *scriptedWindow) SendMessage(ctx context.Context, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = append(w.messages, text)
	return nil
}

func (w *scriptedWindow) ClearChat(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cleared++
	return nil
}

func (w *scriptedWindow) RequestInput(ctx context.Context, prompt string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prompts = append(w.prompts, prompt)
	if len(w.replies) == 0 {
		return "", errors.New("no more replies")
	}
	r := w.replies[0]
	w.replies = w.replies[1:]
	return r, nil
}

// blockingWindow never answers until ctx is done.
type blockingWindow struct{}

func (blockingWindow) SendMessage(ctx context.Context, text string) error { return nil }
func (blockingWindow) ClearChat(ctx context.Context) error               { return nil }
func (blockingWindow) RequestInput(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}
