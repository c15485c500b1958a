package middleware

import (
	"context"

	"github.com/aretw0/flux"
)

// Filter gates actions on the current state. Allowed actions continue down
// the chain; rejected ones are silently dropped, so the reducer never sees
// them.
//
// onReject, when non-nil, maps a rejected action to a replacement that is
// issued as an independent dispatch (it runs the full chain from the top).
// This is how a gate surfaces "rejected" as ordinary state, e.g. by
// dispatching an error action instead of forwarding the original.
func Filter[S, A any](allow func(state S, action A) bool, onReject func(action A) (A, bool)) flux.Middleware[S, A] {
	return func(ctx context.Context, state flux.StateFn[S], dispatch flux.DispatchFn[A], next flux.DispatchFn[A], action A) {
		if allow(state(), action) {
			next(ctx, action)
			return
		}

		if onReject != nil {
			if replacement, ok := onReject(action); ok {
				dispatch(ctx, replacement)
			}
		}
	}
}
