package plugin

import (
	"context"

	"github.com/aretw0/baxter/pkg/action"
	"github.com/aretw0/baxter/pkg/domain"
)

// Defaults used by Base.
const (
	DefaultName     = "untitled"
	DefaultVersion  = 1.0
	DefaultResponse = "Default Response!"
)

// Plugin is an action that identifies itself.
type Plugin interface {
	action.Handler
	Name() string
	Version() float64
}

// Factory constructs a plugin. It is the compiled counterpart of a script's
// top-level definitions.
type Factory func() Plugin

// Base can be embedded by plugins that only override some methods.
type Base struct {
	PluginName    string
	PluginVersion float64
}

// Name returns PluginName, or DefaultName when unset.
func (b Base) Name() string {
	if b.PluginName == "" {
		return DefaultName
	}
	return b.PluginName
}

// Version returns PluginVersion, or DefaultVersion when unset.
func (b Base) Version() float64 {
	if b.PluginVersion == 0 {
		return DefaultVersion
	}
	return b.PluginVersion
}

// GetResponse answers with DefaultResponse.
func (Base) GetResponse(ctx context.Context, call action.Call) (string, error) {
	return DefaultResponse, nil
}

// Info describes an accepted plugin.
type Info struct {
	Name      string  `json:"name"`
	Version   float64 `json:"version"`
	Tag       string  `json:"tag"`
	ActionKey string  `json:"action_key"`
	Source    string  `json:"source"`
}

func newInfo(p Plugin, source string) Info {
	return Info{
		Name:      p.Name(),
		Version:   p.Version(),
		Tag:       domain.PluginTag(p.Name()),
		ActionKey: domain.PluginActionKey(p.Name()),
		Source:    source,
	}
}
