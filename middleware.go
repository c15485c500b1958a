package flux

import "context"

// Middleware intercepts a dispatch in flight.
//
// Each unit receives:
//
//   - state: a zero-argument accessor for the currently committed state.
//     During a dispatch it already reflects commits made by inner
//     middleware or the reducer. Call it only from within this middleware
//     invocation.
//   - dispatch: a re-entrant entry point issuing a brand-new, independently
//     sequenced dispatch. It does not continue the current action; the new
//     dispatch runs the full chain from the top after the current pass
//     settles.
//   - next: the continuation bound to the remainder of the chain. Calling
//     it forwards an action (the original or a transformed one) inward.
//     Not calling it silently drops the action: the reducer never runs and
//     the state is unchanged. Calling it more than once is unusual but not
//     prohibited.
//   - action: the action being dispatched.
//
// Middleware may block before or after calling next (timers, external
// I/O); the dispatch settles only when the outermost unit returns.
type Middleware[S, A any] func(ctx context.Context, state StateFn[S], dispatch DispatchFn[A], next DispatchFn[A], action A)
