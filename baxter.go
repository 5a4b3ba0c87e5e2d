package baxter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/baxter/internal/adapters/intents"
	"github.com/aretw0/baxter/internal/config"
	"github.com/aretw0/baxter/internal/logging"
	"github.com/aretw0/baxter/pkg/action"
	"github.com/aretw0/baxter/pkg/action/builtin"
	"github.com/aretw0/baxter/pkg/adapters/file"
	"github.com/aretw0/baxter/pkg/adapters/memory"
	"github.com/aretw0/baxter/pkg/adapters/process"
	redisadapter "github.com/aretw0/baxter/pkg/adapters/redis"
	"github.com/aretw0/baxter/pkg/observability"
	"github.com/aretw0/baxter/pkg/persistence/middleware"
	"github.com/aretw0/baxter/pkg/plugin"
	"github.com/aretw0/baxter/pkg/ports"
	"github.com/aretw0/baxter/pkg/session"
	"github.com/aretw0/baxter/plugins/randomnumber"
	"github.com/prometheus/client_golang/prometheus"
)

// Version is overridden at build time with
// -ldflags "-X github.com/aretw0/baxter.Version=v1.2.3".
var Version = "dev"

// DefaultPlugins is the startup table of compiled plugins.
func DefaultPlugins() map[string]plugin.Factory {
	return map[string]plugin.Factory{
		randomnumber.Name: randomnumber.Factory,
	}
}

// Assistant is the high-level entry point of the library.
// It wires the intent dataset, the action registry, plugins and sessions
// into a ready-to-use Chat.
type Assistant struct {
	config     *config.Config
	settings   ports.Settings
	dataset    *intents.Dataset
	classifier *intents.Classifier
	registry   *action.Registry
	dispatcher *action.Dispatcher
	catalog    *plugin.Catalog
	chat       *session.Chat
	gatherer   prometheus.Gatherer
	closers    []func() error
	logger     *slog.Logger
}

type options struct {
	config    *config.Config
	settings  ports.Settings
	dataset   *intents.Dataset
	logger    *slog.Logger
	metrics   *prometheus.Registry
	store     ports.StateStore
	locker    ports.DistributedLocker
	factories map[string]plugin.Factory
	builtins  []builtin.Option
}

// Option defines a functional option for configuring the Assistant.
type Option func(*options)

// WithConfig uses cfg instead of loading baxter.yaml.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithSettings sets the source templates and actions read settings from.
func WithSettings(settings ports.Settings) Option {
	return func(o *options) {
		o.settings = settings
	}
}

// WithDataset uses ds instead of reading intents_path.
func WithDataset(ds *intents.Dataset) Option {
	return func(o *options) {
		o.dataset = ds
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics registers the dispatch collectors with reg.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(o *options) {
		o.metrics = reg
	}
}

// WithStore overrides the configured session store.
func WithStore(store ports.StateStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithLocker enables a distributed session lock.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(o *options) {
		o.locker = locker
	}
}

// WithPlugins replaces the compiled plugin table (default DefaultPlugins()).
func WithPlugins(factories map[string]plugin.Factory) Option {
	return func(o *options) {
		o.factories = factories
	}
}

// WithBuiltinOptions configures the built-in actions.
func WithBuiltinOptions(opts ...builtin.Option) Option {
	return func(o *options) {
		o.builtins = append(o.builtins, opts...)
	}
}

// New builds an Assistant. Without WithConfig it loads baxter.yaml (see
// config.Load). Plugin discovery runs once, here.
func New(ctx context.Context, opts ...Option) (*Assistant, error) {
	o := &options{
		logger:    logging.NewNop(),
		factories: DefaultPlugins(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.config == nil {
		cfg, src, err := config.Load(config.Options{})
		if err != nil {
			return nil, err
		}
		o.config = cfg
		if o.settings == nil {
			o.settings = src
		}
	}
	cfg := o.config

	a := &Assistant{
		config:   cfg,
		settings: o.settings,
		logger:   o.logger,
	}

	ds := o.dataset
	if ds == nil {
		var err error
		ds, err = intents.Load(cfg.IntentsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load intents: %w", err)
		}
	}
	a.dataset = ds
	a.classifier = intents.NewClassifier(ds)
	spans, err := intents.NewSpanLocator(ds)
	if err != nil {
		return nil, fmt.Errorf("failed to compile spans: %w", err)
	}

	hooks := observability.LoggingHooks(o.logger)
	var metrics *observability.Metrics
	if o.metrics != nil {
		metrics, err = observability.NewMetrics(o.metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		hooks = observability.Compose(hooks, metrics.Hooks())
		a.gatherer = o.metrics
	}

	a.registry = action.NewRegistry()
	builtinOpts := append([]builtin.Option{
		builtin.WithOpener(process.NewRunner(process.WithCommands(cfg.Commands))),
	}, o.builtins...)
	a.registry.Merge(builtin.Actions(builtinOpts...))

	a.catalog, err = plugin.Discover(ctx, cfg.PluginsDir, a.classifier,
		plugin.WithFactories(o.factories),
		plugin.WithLogger(o.logger),
	)
	if err != nil {
		return nil, err
	}
	for _, key := range a.registry.Merge(a.catalog.Actions) {
		o.logger.Warn("Plugin shadows an existing action", "action_key", key)
	}
	if metrics != nil {
		metrics.Plugins.Set(float64(a.catalog.Count()))
	}
	o.logger.Info("Plugins loaded", "count", a.catalog.Count())

	dispatchOpts := []action.Option{
		action.WithLogger(o.logger),
		action.WithHooks(hooks),
		action.WithTimeout(cfg.DispatchTimeout),
		action.WithClassifier(a.classifier),
		action.WithSpanLocator(spans),
	}
	if o.settings != nil {
		dispatchOpts = append(dispatchOpts, action.WithSettings(o.settings))
	}
	a.dispatcher = action.NewDispatcher(a.registry, dispatchOpts...)

	store, locker := o.store, o.locker
	if store == nil {
		store, locker = a.openStore(cfg, locker)
	}
	if cfg.Encryption.Key != "" {
		mw, err := encryption(cfg.Encryption)
		if err != nil {
			return nil, err
		}
		store = middleware.Chain(store, mw)
	}
	managerOpts := []session.ManagerOption{session.WithManagerLogger(o.logger)}
	if locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(locker))
	}

	a.chat = session.NewChat(a.classifier, a.dispatcher,
		session.NewManager(store, managerOpts...),
		session.WithLogger(o.logger),
		session.WithClassifierError(cfg.ClassifierErrorStr),
	)
	return a, nil
}

func (a *Assistant) openStore(cfg *config.Config, locker ports.DistributedLocker) (ports.StateStore, ports.DistributedLocker) {
	switch cfg.Store {
	case config.StoreRedis:
		client := redisadapter.NewClient(cfg.Redis.Addr, "", 0)
		a.closers = append(a.closers, client.Close)
		store := redisadapter.NewFromClient(client,
			redisadapter.WithPrefix(cfg.Redis.Prefix+"session:"),
			redisadapter.WithTTL(cfg.Redis.TTL),
		)
		if locker == nil {
			locker = redisadapter.NewLocker(client, cfg.Redis.Prefix)
		}
		a.logger.Info("Using Redis session store", "addr", cfg.Redis.Addr)
		return store, locker
	case config.StoreFile:
		a.logger.Info("Using file session store", "dir", cfg.File.Dir)
		return file.New(cfg.File.Dir), locker
	default:
		return memory.NewStore(), locker
	}
}

func encryption(cfg config.EncryptionConfig) (middleware.Middleware, error) {
	active, err := middleware.DecodeKey(cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("encryption.key: %w", err)
	}
	enc := middleware.EncryptionConfig{ActiveKey: active}
	for _, k := range cfg.FallbackKeys {
		key, err := middleware.DecodeKey(k)
		if err != nil {
			return nil, fmt.Errorf("encryption.fallback_keys: %w", err)
		}
		enc.FallbackKeys = append(enc.FallbackKeys, key)
	}
	return middleware.NewEncryptionMiddleware(enc)
}

// Chat returns the conversation runner.
func (a *Assistant) Chat() *session.Chat {
	return a.chat
}

// Dispatcher returns the action dispatcher.
func (a *Assistant) Dispatcher() *action.Dispatcher {
	return a.dispatcher
}

// Config returns the configuration the assistant was built with.
func (a *Assistant) Config() *config.Config {
	return a.config
}

// Dataset returns the loaded intent dataset.
func (a *Assistant) Dataset() *intents.Dataset {
	return a.dataset
}

// ActionKeys lists every registered action key, sorted.
func (a *Assistant) ActionKeys() []string {
	return a.registry.Keys()
}

// Plugins lists the accepted plugins.
func (a *Assistant) Plugins() []plugin.Info {
	return a.catalog.List()
}

// PluginCount returns the number of accepted plugins.
func (a *Assistant) PluginCount() int {
	return a.catalog.Count()
}

// Gatherer returns the metrics registry, or nil without WithMetrics.
func (a *Assistant) Gatherer() prometheus.Gatherer {
	return a.gatherer
}

// Close ends every conversation and releases store connections.
func (a *Assistant) Close() error {
	a.chat.CloseAll()
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Route is one intent and the action it dispatches to.
type Route struct {
	Tag string
	// ActionKey is nil for intents answered by their template alone.
	ActionKey  *string
	Registered bool
	Plugin     bool
}

// Routes lists every intent of the dataset with its action, in dataset order.
func (a *Assistant) Routes() []Route {
	ins := a.classifier.Intents()
	routes := make([]Route, 0, len(ins))
	for _, in := range ins {
		r := Route{Tag: in.Tag, ActionKey: in.Action}
		if in.Action != nil {
			r.Registered = a.registry.Exists(*in.Action)
			_, r.Plugin = a.catalog.Actions[*in.Action]
		}
		routes = append(routes, r)
	}
	return routes
}
