package flux

import (
	"context"
	"sync"
)

// Observable bridges a Store to reactive consumers. It re-publishes the
// store's state after each settled mutation, so subscribers observe only
// settled states, never an intermediate value from inside the middleware
// chain.
//
// All notifications are serialized on a single publisher goroutine, giving
// subscribers a single-threaded delivery context regardless of where the
// dispatch computation ran.
type Observable[S, A any] struct {
	store *Store[S, A]

	mu      sync.RWMutex
	current S
	subs    map[int]*subscriber[S]
	nextID  int

	publish chan S
	done    chan struct{}
	once    sync.Once
}

type subscriber[S any] struct {
	ch  chan S
	ctx context.Context
}

// NewObservable wraps a store, capturing its current state as the initial
// published value, and starts the publisher goroutine. Call Close when the
// adapter is no longer needed.
func NewObservable[S, A any](store *Store[S, A]) *Observable[S, A] {
	o := &Observable[S, A]{
		store:   store,
		current: store.State(),
		subs:    make(map[int]*subscriber[S]),
		publish: make(chan S),
		done:    make(chan struct{}),
	}
	go o.loop()
	return o
}

// State returns the most recently published state.
func (o *Observable[S, A]) State() S {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.current
}

// CanUndo reports whether the underlying store can undo.
func (o *Observable[S, A]) CanUndo() bool {
	return o.store.CanUndo()
}

// Dispatch forwards to the underlying store and, once the dispatch has
// fully settled, publishes the store's now-current state to subscribers
// exactly once.
func (o *Observable[S, A]) Dispatch(ctx context.Context, action A) {
	o.store.Dispatch(ctx, action)
	o.republish()
}

// Undo forwards to the underlying store and publishes the restored state.
func (o *Observable[S, A]) Undo() {
	o.store.Undo()
	o.republish()
}

// Subscribe registers for state-change notifications. Each settled mutation
// delivers one value on the returned channel, in order. The subscription
// ends when ctx is cancelled or the adapter is closed; the channel is
// closed on removal.
//
// Delivery is blocking: a subscriber that stops receiving without
// cancelling its context will eventually stall publishing.
func (o *Observable[S, A]) Subscribe(ctx context.Context) <-chan S {
	select {
	case <-o.done:
		ch := make(chan S)
		close(ch)
		return ch
	default:
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sub := &subscriber[S]{
		ch:  make(chan S, 1),
		ctx: ctx,
	}
	id := o.nextID
	o.nextID++
	o.subs[id] = sub
	return sub.ch
}

// Close stops the publisher goroutine and closes all subscriber channels.
// The underlying store remains usable.
func (o *Observable[S, A]) Close() {
	o.once.Do(func() {
		close(o.done)
	})
}

func (o *Observable[S, A]) republish() {
	snapshot := o.store.State()

	o.mu.Lock()
	o.current = snapshot
	o.mu.Unlock()

	select {
	case o.publish <- snapshot:
	case <-o.done:
	}
}

func (o *Observable[S, A]) loop() {
	for {
		select {
		case snapshot := <-o.publish:
			o.fanout(snapshot)
		case <-o.done:
			o.mu.Lock()
			for id, sub := range o.subs {
				close(sub.ch)
				delete(o.subs, id)
			}
			o.mu.Unlock()
			return
		}
	}
}

func (o *Observable[S, A]) fanout(snapshot S) {
	o.mu.RLock()
	subs := make(map[int]*subscriber[S], len(o.subs))
	for id, sub := range o.subs {
		subs[id] = sub
	}
	o.mu.RUnlock()

	var drop []int
	for id, sub := range subs {
		select {
		case sub.ch <- snapshot:
		case <-sub.ctx.Done():
			drop = append(drop, id)
		case <-o.done:
			return
		}
	}

	if len(drop) > 0 {
		o.mu.Lock()
		for _, id := range drop {
			if sub, ok := o.subs[id]; ok {
				close(sub.ch)
				delete(o.subs, id)
			}
		}
		o.mu.Unlock()
	}
}
