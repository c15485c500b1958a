package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/flux"
)

// Logging logs each dispatch passing through it: the action kind on entry
// and the time the rest of the chain took on exit.
func Logging[S, A any](logger *slog.Logger) flux.Middleware[S, A] {
	return func(ctx context.Context, state flux.StateFn[S], dispatch flux.DispatchFn[A], next flux.DispatchFn[A], action A) {
		kind := fmt.Sprintf("%T", action)
		logger.Debug("dispatching", "action", kind)

		start := time.Now()
		next(ctx, action)

		logger.Info("dispatched",
			"action", kind,
			"duration", time.Since(start),
		)
	}
}
