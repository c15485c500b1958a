package middleware

import (
	"context"

	"github.com/aretw0/flux"
)

// Map rewrites every action before forwarding it. Inner middleware and the
// reducer observe only the transformed action, never the original.
func Map[S, A any](transform func(action A) A) flux.Middleware[S, A] {
	return func(ctx context.Context, state flux.StateFn[S], dispatch flux.DispatchFn[A], next flux.DispatchFn[A], action A) {
		next(ctx, transform(action))
	}
}
