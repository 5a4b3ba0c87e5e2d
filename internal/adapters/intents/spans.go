package intents

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/baxter/pkg/domain"
)

// SpanLocator finds important message parts with the per-intent span
// patterns. Only named groups part1, part2 and part3 are reported.
type SpanLocator struct {
	patterns []*regexp.Regexp
}

// NewSpanLocator compiles the span patterns of ds. Patterns match case
// insensitively.
func NewSpanLocator(ds *Dataset) (*SpanLocator, error) {
	l := &SpanLocator{}
	for _, in := range ds.Intents {
		for _, p := range in.Spans {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("intent %s: bad span pattern: %w", in.Tag, err)
			}
			l.patterns = append(l.patterns, re)
		}
	}
	return l, nil
}

var spanNames = map[string]bool{"part1": true, "part2": true, "part3": true}

// Locate returns the named groups of the first matching pattern.
// No match yields empty spans.
func (l *SpanLocator) Locate(ctx context.Context, text string) (domain.Spans, error) {
	spans := domain.Spans{}
	for _, re := range l.patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for i, name := range re.SubexpNames() {
			if !spanNames[name] {
				continue
			}
			if v := strings.TrimSpace(m[i]); v != "" {
				spans[name] = v
			}
		}
		return spans, ctx.Err()
	}
	return spans, ctx.Err()
}
