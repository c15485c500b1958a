// Package history implements the bounded snapshot stack backing undo.
//
// The stack stores prior state values in dispatch order. When capacity is
// exceeded the oldest snapshot is evicted, so undo can only reach back
// `max` dispatches. A capacity of zero disables retention entirely.
package history

// Stack is a size-bounded LIFO of state snapshots.
// It is not safe for concurrent use; the owning store serializes access.
type Stack[S any] struct {
	items []S
	max   int
}

// New creates a stack holding at most max snapshots.
// A max of zero (or negative) means nothing is ever retained.
func New[S any](max int) *Stack[S] {
	if max < 0 {
		max = 0
	}
	return &Stack[S]{max: max}
}

// Push records a snapshot, evicting the oldest entry when full.
func (s *Stack[S]) Push(snapshot S) {
	if s.max == 0 {
		return
	}
	if len(s.items) >= s.max {
		// Shift left instead of re-slicing so evicted values don't pin
		// the backing array.
		copy(s.items, s.items[1:])
		s.items = s.items[:len(s.items)-1]
	}
	s.items = append(s.items, snapshot)
}

// Pop removes and returns the most recent snapshot.
// The second return is false when the stack is empty.
func (s *Stack[S]) Pop() (S, bool) {
	if len(s.items) == 0 {
		var zero S
		return zero, false
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last, true
}

// Len returns the number of retained snapshots.
func (s *Stack[S]) Len() int {
	return len(s.items)
}

// CanUndo reports whether at least one snapshot is retained.
func (s *Stack[S]) CanUndo() bool {
	return len(s.items) > 0
}
