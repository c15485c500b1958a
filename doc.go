/*
Package flux is a small unidirectional state-management engine: one mutable state value advanced exclusively by a pure reducer, with every dispatch flowing through an ordered middleware pipeline, plus a bounded undo history.

# Concept

A Store owns a single state snapshot. Callers never mutate it; they Dispatch actions, and the reducer computes the replacement state. Middleware wraps the reducer in onion order (first declared is outermost), letting cross-cutting behavior observe, transform, gate, or re-dispatch actions without touching the reducer. The Observable adapter re-publishes settled states to reactive consumers (a UI layer, typically) once per dispatch.

# Key Properties

  - Pure reducers: same (state, action) in, structurally equal state out. Unknown actions return the input unchanged.
  - Onion middleware: declaration order == outer-to-inner on entry, inner-to-outer on exit. A unit that never calls next silently drops the action.
  - Bounded undo: each dispatch pushes the prior state; the oldest entry is evicted beyond the configured capacity. Undo restores without replaying reducer or middleware.
  - Single-flight dispatch: a mutex serializes dispatches; one issued mid-flight queues behind the current one.

# Usage

	package main

	import (
		"context"
		"fmt"

		"github.com/aretw0/flux"
	)

	type counter struct {
		Value int
	}

	type op int

	const (
		increment op = iota
		decrement
	)

	func reduce(s counter, a op) counter {
		switch a {
		case increment:
			s.Value++
		case decrement:
			s.Value--
		}
		return s
	}

	func main() {
		store := flux.New(counter{}, reduce)

		ctx := context.Background()
		store.Dispatch(ctx, increment)
		store.Dispatch(ctx, increment)
		fmt.Println(store.State().Value) // 2

		store.Undo()
		fmt.Println(store.State().Value) // 1
	}

Stock middleware (logging, gating, transforms, metrics, persistence) lives in pkg/middleware; snapshot persistence backends live under pkg/adapters.
*/
package flux
