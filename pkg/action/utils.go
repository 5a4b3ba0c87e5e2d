package action

import (
	"context"
	"errors"
	"strings"

	"github.com/aretw0/baxter/pkg/domain"
	"github.com/aretw0/baxter/pkg/ports"
	"github.com/aretw0/baxter/pkg/template"
)

var (
	// ErrNoSpanLocator is returned by Utils.Spans when no locator is configured.
	ErrNoSpanLocator = errors.New("no span locator configured")
	// ErrReadOnlySettings is returned by Utils.SetSetting for read-only sources.
	ErrReadOnlySettings = errors.New("settings are read-only")
)

// Utils bundles the collaborators actions may reach for.
// One instance is shared by all invocations of a dispatcher.
type Utils struct {
	dispatcher *Dispatcher
	settings   ports.Settings
	classifier ports.Classifier
	spans      ports.SpanLocator
	templates  *template.Engine
}

// Dispatcher returns the dispatcher, for actions that dispatch recursively.
func (u *Utils) Dispatcher() *Dispatcher { return u.dispatcher }

// Settings returns the configuration source. It may be nil.
func (u *Utils) Settings() ports.Settings { return u.settings }

// Classifier returns the classifier. It may be nil.
func (u *Utils) Classifier() ports.Classifier { return u.classifier }

// HandleIfStatements renders the conditional block of tmpl against the settings.
func (u *Utils) HandleIfStatements(tmpl string) (string, error) {
	return u.templates.Render(tmpl)
}

// Spans runs the span locator over text.
func (u *Utils) Spans(ctx context.Context, text string) (domain.Spans, error) {
	if u.spans == nil {
		return nil, ErrNoSpanLocator
	}
	return u.spans.Locate(ctx, text)
}

// SetSetting persists a setting when the source supports writes.
func (u *Utils) SetSetting(key string, value any) error {
	m, ok := u.settings.(ports.MutableSettings)
	if !ok {
		return ErrReadOnlySettings
	}
	return m.Set(key, value)
}

// PartByIndexes returns the words of s from start through end (inclusive).
// Negative indexes yield false. Indexes past the end are clamped.
func PartByIndexes(s string, start, end int) (string, bool) {
	if start < 0 || end < 0 {
		return "", false
	}
	words := strings.Fields(s)
	if start >= len(words) || start > end {
		return "", true
	}
	if end >= len(words) {
		end = len(words) - 1
	}
	return strings.Join(words[start:end+1], " "), true
}
