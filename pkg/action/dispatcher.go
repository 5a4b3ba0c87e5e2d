package action

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/aretw0/baxter/internal/logging"
	"github.com/aretw0/baxter/pkg/domain"
	"github.com/aretw0/baxter/pkg/ports"
	"github.com/aretw0/baxter/pkg/template"
)

// Dispatcher is the single point that turns a resolved action key into the
// final response string.
type Dispatcher struct {
	registry *Registry
	utils    *Utils
	logger   *slog.Logger
	hooks    domain.DispatchHooks
	timeout  time.Duration
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the structured logger used for action failures.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.DispatchHooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// WithTimeout bounds every handler invocation, including the time spent
// waiting on user input. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

// WithSettings sets the configuration source handed to actions and templates.
func WithSettings(settings ports.Settings) Option {
	return func(d *Dispatcher) {
		d.utils.settings = settings
	}
}

// WithClassifier sets the classifier handed to actions.
func WithClassifier(classifier ports.Classifier) Option {
	return func(d *Dispatcher) {
		d.utils.classifier = classifier
	}
}

// WithSpanLocator sets the span locator handed to actions.
func WithSpanLocator(locator ports.SpanLocator) Option {
	return func(d *Dispatcher) {
		d.utils.spans = locator
	}
}

// NewDispatcher creates a dispatcher over registry.
func NewDispatcher(registry *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		logger:   logging.NewNop(),
	}
	d.utils = &Utils{dispatcher: d}
	for _, opt := range opts {
		opt(d)
	}
	d.utils.templates = template.NewEngine(d.utils.settings)
	return d
}

// Utils returns the helpers handed to every action.
func (d *Dispatcher) Utils() *Utils {
	return d.utils
}

// Registry returns the action map this dispatcher resolves against.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// ActionExists reports whether a handler is registered for key.
func (d *Dispatcher) ActionExists(key string) bool {
	return d.registry.Exists(key)
}

// Dispatch resolves actionKey and returns the response for input.
// A nil response means the message needs no reply. The returned error is
// always a *domain.HandlerContractViolation and should be treated as fatal.
func (d *Dispatcher) Dispatch(ctx context.Context, input string, actionKey *string, mainTemplate, errorTemplate string, trig domain.Trigger) (*string, error) {
	start := time.Now()

	if actionKey == nil {
		d.emit(ctx, "", domain.OutcomeNoAction, start, nil)
		return &mainTemplate, nil
	}
	key := *actionKey

	if key == domain.StopwordAction {
		d.emit(ctx, key, domain.OutcomeStopword, start, nil)
		return nil, nil
	}

	h, ok := d.registry.Lookup(key)
	if !ok {
		d.logger.Debug("No handler bound to action", "action_key", key)
		d.emit(ctx, key, domain.OutcomeUnbound, start, nil)
		return &mainTemplate, nil
	}

	if isMissing(h) {
		violation := &domain.HandlerContractViolation{ActionKey: key}
		d.emit(ctx, key, domain.OutcomeViolation, start, violation)
		return nil, violation
	}

	resp, err := d.invoke(ctx, h, Call{
		Input:         input,
		MainTemplate:  mainTemplate,
		ErrorTemplate: errorTemplate,
		Utils:         d.utils,
		Trigger:       trig,
	})
	if err != nil {
		var violation *domain.HandlerContractViolation
		if errors.As(err, &violation) || errors.Is(err, domain.ErrHandlerContract) {
			if violation == nil {
				violation = &domain.HandlerContractViolation{ActionKey: key, Err: err}
			}
			d.emit(ctx, key, domain.OutcomeViolation, start, violation)
			return nil, violation
		}

		execErr := &domain.ActionExecutionError{ActionKey: key, Err: err}
		d.logger.Error("Action failed", "action_key", key, "err", err)
		d.emit(ctx, key, domain.OutcomeFailed, start, execErr)
		return &errorTemplate, nil
	}

	d.emit(ctx, key, domain.OutcomeHandled, start, nil)
	return &resp, nil
}

// invoke runs the handler, converting panics into errors.
func (d *Dispatcher) invoke(ctx context.Context, h Handler, call Call) (resp string, err error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Debug("Recovered action panic", "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return h.GetResponse(ctx, call)
}

func (d *Dispatcher) emit(ctx context.Context, key string, outcome domain.Outcome, start time.Time, err error) {
	if d.hooks.OnDispatch == nil {
		return
	}
	d.hooks.OnDispatch(ctx, &domain.DispatchEvent{
		Timestamp: start,
		ActionKey: key,
		Outcome:   outcome,
		Duration:  time.Since(start),
		Err:       err,
	})
}
