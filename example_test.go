package flux_test

import (
	"context"
	"fmt"

	"github.com/aretw0/flux"
)

type tally struct {
	Value int
}

type tallyOp int

const (
	tallyAdd tallyOp = iota
	tallySub
)

func tallyReducer(s tally, op tallyOp) tally {
	switch op {
	case tallyAdd:
		s.Value++
	case tallySub:
		s.Value--
	}
	return s
}

// ExampleNew demonstrates the basic dispatch/undo cycle.
func ExampleNew() {
	store := flux.New(tally{}, tallyReducer)
	ctx := context.Background()

	store.Dispatch(ctx, tallyAdd)
	store.Dispatch(ctx, tallyAdd)
	fmt.Println("counter:", store.State().Value)

	store.Undo()
	fmt.Println("counter:", store.State().Value)
	fmt.Println("can undo:", store.CanUndo())
	// Output:
	// counter: 2
	// counter: 1
	// can undo: true
}

// ExampleWithMiddleware shows a gate that silently drops subtractions.
func ExampleWithMiddleware() {
	noSub := func(ctx context.Context, state flux.StateFn[tally], dispatch flux.DispatchFn[tallyOp], next flux.DispatchFn[tallyOp], op tallyOp) {
		if op == tallySub {
			return // reducer never runs
		}
		next(ctx, op)
	}

	store := flux.New(tally{}, tallyReducer, flux.WithMiddleware(noSub))
	ctx := context.Background()

	store.Dispatch(ctx, tallyAdd)
	store.Dispatch(ctx, tallySub)
	fmt.Println("counter:", store.State().Value)
	// Output:
	// counter: 1
}

// ExampleNewObservable wires a subscriber to settled state changes.
func ExampleNewObservable() {
	store := flux.New(tally{}, tallyReducer)
	obs := flux.NewObservable(store)
	defer obs.Close()

	ctx := context.Background()
	updates := obs.Subscribe(ctx)

	obs.Dispatch(ctx, tallyAdd)
	fmt.Println("published:", (<-updates).Value)

	obs.Undo()
	fmt.Println("published:", (<-updates).Value)
	// Output:
	// published: 1
	// published: 0
}
