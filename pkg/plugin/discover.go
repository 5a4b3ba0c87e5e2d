package plugin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/baxter/internal/logging"
	"github.com/aretw0/baxter/pkg/domain"
	"github.com/aretw0/baxter/pkg/ports"
)

type config struct {
	factories map[string]Factory
	logger    *slog.Logger
	scripts   bool
}

// Option configures Discover.
type Option func(*config)

// WithFactories adds compiled plugins. The map key names the source in logs
// and in Info.Source.
func WithFactories(factories map[string]Factory) Option {
	return func(c *config) {
		for name, f := range factories {
			c.factories[name] = f
		}
	}
}

// WithLogger sets the logger used for skip warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithScripts toggles loading *.go scripts from the plugin directory (default on).
func WithScripts(enabled bool) Option {
	return func(c *config) {
		c.scripts = enabled
	}
}

// Discover instantiates every plugin candidate and keeps the ones the intent
// index knows about. A missing dir is created. The only errors returned are
// *domain.PluginLoadError values for candidates that cannot be loaded or
// constructed, and filesystem errors on dir itself.
func Discover(ctx context.Context, dir string, index ports.IntentIndex, opts ...Option) (*Catalog, error) {
	cfg := &config{
		factories: make(map[string]Factory),
		logger:    logging.NewNop(),
		scripts:   true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	catalog := newCatalog()

	names := make([]string, 0, len(cfg.factories))
	for name := range cfg.factories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p, err := construct(cfg.factories[name])
		if err != nil {
			return nil, &domain.PluginLoadError{Source: name, Err: err}
		}
		accept(catalog, index, p, name, cfg.logger)
	}

	if dir == "" || !cfg.scripts {
		return catalog, nil
	}

	scripts, err := listScripts(dir)
	if err != nil {
		return nil, err
	}
	for _, path := range scripts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := LoadScript(path)
		if err != nil {
			return nil, &domain.PluginLoadError{Source: path, Err: err}
		}
		accept(catalog, index, p, path, cfg.logger)
	}

	return catalog, nil
}

func construct(f Factory) (p Plugin, err error) {
	if f == nil {
		return nil, errors.New("nil factory")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("constructor panicked: %v", r)
		}
	}()
	p = f()
	if p == nil {
		return nil, errors.New("constructor returned nil")
	}
	return p, nil
}

func accept(c *Catalog, index ports.IntentIndex, p Plugin, source string, logger *slog.Logger) {
	name := p.Name()
	if name == "" {
		logger.Warn("Plugin has no name, skipping", "source", source)
		return
	}

	tag, key := domain.PluginTag(name), domain.PluginActionKey(name)
	if index == nil || !index.TagExists(tag) || !index.ActionExists(key) {
		logger.Warn("Plugin is not registered in the intent dataset, skipping",
			"plugin", name,
			"tag", tag,
			"action_key", key,
		)
		return
	}

	info := c.add(p, source)
	logger.Info("Plugin loaded", "plugin", info.Name, "version", info.Version, "source", source)
}

// listScripts returns the *.go files of dir, creating dir when missing.
func listScripts(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create plugin directory: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read plugin directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}
