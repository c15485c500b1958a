package flux

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/flux/internal/history"
	"github.com/aretw0/flux/internal/logging"
)

// DefaultMaxHistory is the number of prior states retained for undo when
// WithMaxHistory is not given.
const DefaultMaxHistory = 10

// Reducer computes the next state from the current state and an action.
//
// Reducers must be pure: no side effects, no I/O, and the same
// (state, action) pair must always yield structurally equal results.
// A reducer that does not recognize an action must return the input state
// unchanged; there is no reducer-level error channel. Logic that needs to
// reject an action belongs in middleware, which can keep the reducer from
// running at all.
type Reducer[S, A any] func(state S, action A) S

// StateFn returns the currently committed state. Inside a middleware call it
// reflects updates already committed by inner middleware or the reducer
// during that same dispatch.
type StateFn[S any] func() S

// DispatchFn issues an action into a store.
type DispatchFn[A any] func(ctx context.Context, action A)

// Store is the engine: it owns one state value and advances it exclusively
// through the reducer, with every dispatch flowing through the middleware
// chain first.
//
// Dispatches are single-flight: a mutex serializes Dispatch, Undo and State,
// so a Dispatch issued while another is in flight simply queues behind it.
// There is no cancellation of an in-flight dispatch; a middleware that
// neither calls next nor returns will hang the store.
type Store[S, A any] struct {
	mu         sync.Mutex
	state      S
	reducer    Reducer[S, A]
	middleware []Middleware[S, A]
	history    *history.Stack[S]
	maxHistory int
	pending    []A
	logger     *slog.Logger
}

// Option defines a functional option for configuring a Store.
type Option[S, A any] func(*Store[S, A])

// WithMiddleware appends interceptors to the dispatch pipeline.
// Declaration order is onion order: the first middleware given is the
// outermost wrapper, running first on entry and last on exit.
// The list is fixed once the store is constructed.
func WithMiddleware[S, A any](mw ...Middleware[S, A]) Option[S, A] {
	return func(s *Store[S, A]) {
		s.middleware = append(s.middleware, mw...)
	}
}

// WithMaxHistory bounds the undo stack to n prior states (default
// DefaultMaxHistory). Zero disables undo entirely: every dispatch still
// attempts a push, but nothing is retained.
func WithMaxHistory[S, A any](n int) Option[S, A] {
	return func(s *Store[S, A]) {
		s.maxHistory = n
	}
}

// WithLogger sets a custom structured logger for the store.
func WithLogger[S, A any](logger *slog.Logger) Option[S, A] {
	return func(s *Store[S, A]) {
		s.logger = logger
	}
}

// New creates a Store starting at initial.
// The reducer is required; middleware is optional.
func New[S, A any](initial S, reducer Reducer[S, A], opts ...Option[S, A]) *Store[S, A] {
	if reducer == nil {
		panic("flux: reducer is required")
	}

	s := &Store[S, A]{
		state:      initial,
		reducer:    reducer,
		maxHistory: DefaultMaxHistory,
		logger:     logging.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.history = history.New[S](s.maxHistory)
	return s
}

// State returns the current committed state snapshot.
// The returned value must be treated as read-only.
func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CanUndo reports whether at least one prior state is retained.
func (s *Store[S, A]) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// Dispatch pushes the current state onto history, runs the action through
// the middleware chain and, if the chain reaches the terminal step, commits
// reducer(state, action) as the new state. It returns only once the chain
// and any re-entrant dispatches queued by middleware have settled.
//
// Re-entrant dispatches (issued through the dispatch function handed to
// middleware) are independent top-level dispatches: each pushes its own
// history entry and runs the full chain, including the middleware that
// issued it. They run FIFO after the current pass settles. Nothing guards
// against a middleware that unconditionally re-dispatches; avoiding that
// cycle is the caller's responsibility.
func (s *Store[S, A]) Dispatch(ctx context.Context, action A) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dispatchLocked(ctx, action)

	for len(s.pending) > 0 {
		queued := s.pending[0]
		s.pending = s.pending[1:]
		s.dispatchLocked(ctx, queued)
	}
}

// Undo makes the most recent history entry the current state, without any
// reducer or middleware involvement. It is a no-op when history is empty,
// and it does not push onto history itself.
func (s *Store[S, A]) Undo() {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.history.Pop()
	if !ok {
		s.logger.Debug("undo skipped, history empty")
		return
	}
	s.state = prev
	s.logger.Debug("undo applied", "remaining", s.history.Len())
}

func (s *Store[S, A]) dispatchLocked(ctx context.Context, action A) {
	start := time.Now()
	s.history.Push(s.state)
	s.run(ctx, 0, action)
	s.logger.Debug("dispatch settled",
		"action", fmt.Sprintf("%T", action),
		"duration", time.Since(start),
	)
}

// run walks the middleware chain with an index cursor. Reaching the end of
// the list is the terminal step: the reducer result is committed into the
// live state. Middleware that never calls next leaves the state untouched.
func (s *Store[S, A]) run(ctx context.Context, index int, action A) {
	if index >= len(s.middleware) {
		s.state = s.reducer(s.state, action)
		return
	}

	state := func() S { return s.state }
	dispatch := func(ctx context.Context, a A) {
		s.pending = append(s.pending, a)
	}
	next := func(ctx context.Context, a A) {
		s.run(ctx, index+1, a)
	}

	s.middleware[index](ctx, state, dispatch, next, action)
}
