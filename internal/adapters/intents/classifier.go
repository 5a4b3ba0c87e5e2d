package intents

import (
	"context"
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/aretw0/baxter/pkg/domain"
)

// Classifier scores messages by token overlap with intent patterns.
type Classifier struct {
	*Index
	patterns  [][]map[string]struct{}
	threshold float64
	intN      func(n int) int
}

// ClassifierOption configures the classifier.
type ClassifierOption func(*Classifier)

// WithThreshold sets the minimum score a prediction needs. Default 0.2.
func WithThreshold(t float64) ClassifierOption {
	return func(c *Classifier) {
		c.threshold = t
	}
}

// WithRand replaces the response picker. intN returns a value in [0, n).
func WithRand(intN func(n int) int) ClassifierOption {
	return func(c *Classifier) {
		c.intN = intN
	}
}

// NewClassifier builds a classifier over ds.
func NewClassifier(ds *Dataset, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		Index:     NewIndex(ds),
		threshold: 0.2,
		intN:      rand.IntN,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.patterns = make([][]map[string]struct{}, len(ds.Intents))
	for i, in := range ds.Intents {
		for _, p := range in.Patterns {
			c.patterns[i] = append(c.patterns[i], tokenSet(p))
		}
	}
	return c
}

// Classify returns the best scoring intent. Messages that match nothing well
// enough yield domain.ErrNoIntent.
func (c *Classifier) Classify(ctx context.Context, text string) (domain.Classification, error) {
	if err := ctx.Err(); err != nil {
		return domain.Classification{}, err
	}
	tokens := tokenSet(text)
	if len(tokens) == 0 {
		return domain.Classification{}, domain.ErrNoIntent
	}

	best, bestScore := -1, 0.0
	for i, patterns := range c.patterns {
		for _, p := range patterns {
			if s := jaccard(tokens, p); s > bestScore {
				best, bestScore = i, s
			}
		}
	}
	if best < 0 || bestScore < c.threshold {
		return domain.Classification{}, domain.ErrNoIntent
	}

	in := c.intents[best]
	result := domain.Classification{
		Tag:           in.Tag,
		Confidence:    bestScore,
		Action:        in.Action,
		ErrorTemplate: domain.Ptr(in.ErrorText()),
	}
	if len(in.Responses) > 0 {
		result.MainTemplate = domain.Ptr(in.Responses[c.intN(len(in.Responses))])
	}
	return result, nil
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for t := range a {
		if _, ok := b[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(a)+len(b)-shared)
}
