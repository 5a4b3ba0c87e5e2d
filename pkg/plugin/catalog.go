package plugin

import (
	"sort"

	"github.com/aretw0/baxter/pkg/action"
)

// Catalog is the result of a discovery run.
type Catalog struct {
	// Plugins holds accepted plugins keyed by tag.
	Plugins map[string]Plugin
	// Actions holds the same plugins keyed by action key, ready to merge
	// into an action.Registry.
	Actions map[string]action.Handler

	infos map[string]Info
}

func newCatalog() *Catalog {
	return &Catalog{
		Plugins: make(map[string]Plugin),
		Actions: make(map[string]action.Handler),
		infos:   make(map[string]Info),
	}
}

func (c *Catalog) add(p Plugin, source string) Info {
	info := newInfo(p, source)
	c.Plugins[info.Tag] = p
	c.Actions[info.ActionKey] = p
	c.infos[info.Tag] = info
	return info
}

// Count returns the number of accepted plugins.
func (c *Catalog) Count() int {
	return len(c.Plugins)
}

// List returns the accepted plugins sorted by tag.
func (c *Catalog) List() []Info {
	out := make([]Info, 0, len(c.infos))
	for _, info := range c.infos {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}
