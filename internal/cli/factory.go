package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/baxter"
	"github.com/aretw0/baxter/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Options are shared by every command that builds an assistant.
type Options struct {
	ConfigFile string
	EnvFiles   []string
	Debug      bool
	// Watch reloads settings when the config file changes.
	Watch bool
	// Metrics registers the dispatch and Go runtime collectors.
	Metrics bool
}

// createAssistant loads the configuration and builds the assistant with the
// standard CLI conventions.
func createAssistant(ctx context.Context, opts Options, interactive bool) (*baxter.Assistant, *slog.Logger, error) {
	cfg, src, err := config.Load(config.Options{File: opts.ConfigFile, EnvFiles: opts.EnvFiles})
	if err != nil {
		return nil, nil, err
	}
	logger := createLogger(cfg.LogLevel, opts.Debug, interactive)

	assistantOpts := []baxter.Option{
		baxter.WithConfig(cfg),
		baxter.WithSettings(src),
		baxter.WithLogger(logger),
	}
	if opts.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		assistantOpts = append(assistantOpts, baxter.WithMetrics(reg))
	}

	a, err := baxter.New(ctx, assistantOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing assistant: %w", err)
	}

	if opts.Watch {
		src.Watch(func(name string) {
			logger.Info("Settings reloaded", "file", name)
		})
	}
	return a, logger, nil
}
