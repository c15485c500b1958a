package flux_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/flux"
	"github.com/aretw0/flux/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan counterState) counterState {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			t.Fatal("subscription channel closed unexpectedly")
		}
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a published state")
	}
	return counterState{}
}

func TestObservable_InitialState(t *testing.T) {
	store := newCounterStore()
	store.Dispatch(context.Background(), increment{})

	obs := flux.NewObservable(store)
	defer obs.Close()

	assert.Equal(t, 1, obs.State().Counter, "adapter captures the store state at construction")
}

func TestObservable_PublishesOncePerDispatch(t *testing.T) {
	store := newCounterStore()
	obs := flux.NewObservable(store)
	defer obs.Close()

	ctx := context.Background()
	ch := obs.Subscribe(ctx)

	obs.Dispatch(ctx, increment{})
	assert.Equal(t, 1, recv(t, ch).Counter)

	obs.Dispatch(ctx, increment{})
	assert.Equal(t, 2, recv(t, ch).Counter)

	obs.Dispatch(ctx, decrement{})
	assert.Equal(t, 1, recv(t, ch).Counter)

	select {
	case s := <-ch:
		t.Fatalf("unexpected extra publish: %+v", s)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestObservable_PublishesOnUndo(t *testing.T) {
	store := newCounterStore()
	obs := flux.NewObservable(store)
	defer obs.Close()

	ctx := context.Background()
	ch := obs.Subscribe(ctx)

	obs.Dispatch(ctx, increment{})
	require.Equal(t, 1, recv(t, ch).Counter)

	obs.Undo()
	assert.Equal(t, 0, recv(t, ch).Counter)
	assert.Equal(t, 0, obs.State().Counter)
}

func TestObservable_PublishesOnlySettledStates(t *testing.T) {
	// A re-entrant dispatch inside the chain produces two store dispatches,
	// but the adapter publishes once, after everything settled.
	follower := func(ctx context.Context, state flux.StateFn[counterState], dispatch flux.DispatchFn[counterAction], next flux.DispatchFn[counterAction], action counterAction) {
		next(ctx, action)
		if a, ok := action.(setLoading); ok && a.On {
			dispatch(ctx, increment{})
		}
	}

	store := newCounterStore(flux.WithMiddleware(follower))
	obs := flux.NewObservable(store)
	defer obs.Close()

	ctx := context.Background()
	ch := obs.Subscribe(ctx)

	obs.Dispatch(ctx, setLoading{On: true})

	published := recv(t, ch)
	assert.Equal(t, counterState{Counter: 1, IsLoading: true}, published)

	select {
	case s := <-ch:
		t.Fatalf("intermediate state leaked to subscriber: %+v", s)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestObservable_TransformedDispatchPublishesFinalState(t *testing.T) {
	store := newCounterStore(flux.WithMiddleware(
		middleware.Map[counterState](func(a counterAction) counterAction {
			if _, ok := a.(increment); ok {
				return decrement{}
			}
			return a
		}),
	))
	obs := flux.NewObservable(store)
	defer obs.Close()

	ctx := context.Background()
	ch := obs.Subscribe(ctx)

	obs.Dispatch(ctx, increment{})
	assert.Equal(t, -1, recv(t, ch).Counter)
}

func TestObservable_CancelledSubscriberDoesNotBlock(t *testing.T) {
	store := newCounterStore()
	obs := flux.NewObservable(store)
	defer obs.Close()

	ctx := context.Background()
	subCtx, cancel := context.WithCancel(ctx)
	_ = obs.Subscribe(subCtx)
	cancel()

	// None of these may hang even though the cancelled subscriber never reads.
	for i := 0; i < 5; i++ {
		obs.Dispatch(ctx, increment{})
	}
	assert.Equal(t, 5, obs.State().Counter)

	// A live subscriber still receives subsequent publishes.
	ch := obs.Subscribe(ctx)
	obs.Dispatch(ctx, increment{})
	assert.Equal(t, 6, recv(t, ch).Counter)
}

func TestObservable_Close(t *testing.T) {
	store := newCounterStore()
	obs := flux.NewObservable(store)

	ctx := context.Background()
	ch := obs.Subscribe(ctx)

	obs.Close()
	obs.Close() // idempotent

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "subscriber channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber channel was not closed")
	}

	// The underlying store remains usable; publishing is simply gone.
	obs.Dispatch(ctx, increment{})
	assert.Equal(t, 1, store.State().Counter)
}
