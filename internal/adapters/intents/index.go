package intents

import "github.com/aretw0/baxter/pkg/domain"

// Index answers lookups over a dataset.
type Index struct {
	intents  []Intent
	tags     map[string]int
	byAction map[string]int
}

// NewIndex indexes ds. For duplicate tags or actions the first intent wins.
func NewIndex(ds *Dataset) *Index {
	idx := &Index{
		intents:  ds.Intents,
		tags:     make(map[string]int),
		byAction: make(map[string]int),
	}
	for i, in := range ds.Intents {
		if _, ok := idx.tags[in.Tag]; !ok {
			idx.tags[in.Tag] = i
		}
		if in.Action == nil {
			continue
		}
		if _, ok := idx.byAction[*in.Action]; !ok {
			idx.byAction[*in.Action] = i
		}
	}
	return idx
}

// TagExists reports whether an intent with tag exists.
func (x *Index) TagExists(tag string) bool {
	_, ok := x.tags[tag]
	return ok
}

// ActionExists reports whether any intent is bound to action.
func (x *Index) ActionExists(action string) bool {
	_, ok := x.byAction[action]
	return ok
}

// GetIntentByAction returns the first response and the error message of the
// intent bound to action.
func (x *Index) GetIntentByAction(action string) (domain.Intent, bool) {
	i, ok := x.byAction[action]
	if !ok {
		return domain.Intent{}, false
	}
	in := x.intents[i]
	var main string
	if len(in.Responses) > 0 {
		main = in.Responses[0]
	}
	return domain.Intent{MainTemplate: main, ErrorTemplate: in.ErrorText()}, true
}

// Intents returns the indexed intents.
func (x *Index) Intents() []Intent {
	return x.intents
}
