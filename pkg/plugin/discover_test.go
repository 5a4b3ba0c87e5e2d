package plugin_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/baxter/pkg/action"
	"github.com/aretw0/baxter/pkg/domain"
	"github.com/aretw0/baxter/pkg/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type index struct {
	tags    map[string]bool
	actions map[string]bool
}

func knows(names ...string) index {
	idx := index{tags: map[string]bool{}, actions: map[string]bool{}}
	for _, n := range names {
		idx.tags[domain.PluginTag(n)] = true
		idx.actions[domain.PluginActionKey(n)] = true
	}
	return idx
}

func (i index) TagExists(tag string) bool       { return i.tags[tag] }
func (i index) ActionExists(action string) bool { return i.actions[action] }

type named struct {
	plugin.Base
	reply string
}

func (n named) GetResponse(ctx context.Context, call action.Call) (string, error) {
	return n.reply, nil
}

func factory(name, reply string) plugin.Factory {
	return func() plugin.Plugin {
		return named{Base: plugin.Base{PluginName: name}, reply: reply}
	}
}

func TestDiscover_AcceptsRegisteredPlugin(t *testing.T) {
	cat, err := plugin.Discover(context.Background(), "", knows("coin_flip"), plugin.WithFactories(map[string]plugin.Factory{
		"coin": factory("coin_flip", "Kopf"),
	}))
	require.NoError(t, err)

	assert.Equal(t, 1, cat.Count())
	require.Contains(t, cat.Actions, "plugin-coin_flip-action")
	require.Contains(t, cat.Plugins, "plugin-coin_flip")

	resp, err := cat.Actions["plugin-coin_flip-action"].GetResponse(context.Background(), action.Call{})
	require.NoError(t, err)
	assert.Equal(t, "Kopf", resp)

	assert.Equal(t, []plugin.Info{{
		Name:      "coin_flip",
		Version:   plugin.DefaultVersion,
		Tag:       "plugin-coin_flip",
		ActionKey: "plugin-coin_flip-action",
		Source:    "coin",
	}}, cat.List())
}

func TestDiscover_SkipsUnregisteredPlugin(t *testing.T) {
	cat, err := plugin.Discover(context.Background(), "", knows("other"), plugin.WithFactories(map[string]plugin.Factory{
		"coin": factory("coin_flip", "Kopf"),
	}))
	require.NoError(t, err)
	assert.Zero(t, cat.Count())
	assert.Empty(t, cat.Actions)
}

func TestDiscover_SkipsHalfRegisteredPlugin(t *testing.T) {
	idx := knows()
	idx.tags[domain.PluginTag("coin_flip")] = true // tag without action

	cat, err := plugin.Discover(context.Background(), "", idx, plugin.WithFactories(map[string]plugin.Factory{
		"coin": factory("coin_flip", "Kopf"),
	}))
	require.NoError(t, err)
	assert.Empty(t, cat.Actions)
}

func TestDiscover_SkipsNamelessPlugin(t *testing.T) {
	cat, err := plugin.Discover(context.Background(), "", knows(""), plugin.WithFactories(map[string]plugin.Factory{
		"anon": func() plugin.Plugin { return nameless{} },
	}))
	require.NoError(t, err)
	assert.Empty(t, cat.Actions)
}

type nameless struct{ plugin.Base }

func (nameless) Name() string { return "" }

func TestDiscover_BrokenFactoryIsFatal(t *testing.T) {
	for name, f := range map[string]plugin.Factory{
		"nil-result": func() plugin.Plugin { return nil },
		"panics":     func() plugin.Plugin { panic("boom") },
		"nil":        nil,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := plugin.Discover(context.Background(), "", knows(), plugin.WithFactories(map[string]plugin.Factory{name: f}))
			var loadErr *domain.PluginLoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, name, loadErr.Source)
		})
	}
}

func TestDiscover_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plugins")

	cat, err := plugin.Discover(context.Background(), dir, knows())
	require.NoError(t, err)
	assert.Zero(t, cat.Count())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBase_Defaults(t *testing.T) {
	var b plugin.Base
	assert.Equal(t, "untitled", b.Name())
	assert.Equal(t, 1.0, b.Version())

	resp, err := b.GetResponse(context.Background(), action.Call{})
	require.NoError(t, err)
	assert.Equal(t, "Default Response!", resp)
}
