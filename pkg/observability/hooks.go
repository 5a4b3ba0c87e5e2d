package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/baxter/pkg/domain"
)

// Compose calls every hook in order.
func Compose(hooks ...domain.DispatchHooks) domain.DispatchHooks {
	var fns []func(context.Context, *domain.DispatchEvent)
	for _, h := range hooks {
		if h.OnDispatch != nil {
			fns = append(fns, h.OnDispatch)
		}
	}
	return domain.DispatchHooks{
		OnDispatch: func(ctx context.Context, e *domain.DispatchEvent) {
			for _, fn := range fns {
				fn(ctx, e)
			}
		},
	}
}

// LoggingHooks logs every dispatch at debug level.
func LoggingHooks(logger *slog.Logger) domain.DispatchHooks {
	return domain.DispatchHooks{
		OnDispatch: func(ctx context.Context, e *domain.DispatchEvent) {
			attrs := []any{
				"action_key", e.ActionKey,
				"outcome", string(e.Outcome),
				"duration", e.Duration,
			}
			if e.Err != nil {
				attrs = append(attrs, "err", e.Err)
			}
			logger.DebugContext(ctx, "dispatch", attrs...)
		},
	}
}
