package middleware

import (
	"context"
	"time"

	"github.com/aretw0/flux"
)

// Delay waits d before forwarding the action. The dispatch does not settle
// until the wait and the rest of the chain complete. If ctx is cancelled
// during the wait the action is dropped, like a gate that declined to call
// next.
func Delay[S, A any](d time.Duration) flux.Middleware[S, A] {
	return func(ctx context.Context, state flux.StateFn[S], dispatch flux.DispatchFn[A], next flux.DispatchFn[A], action A) {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
			next(ctx, action)
		case <-ctx.Done():
		}
	}
}
