/*
Package journal records the actions flowing through a store and plays them
back. A Journal sits in the middleware chain like any other interceptor;
every action it forwards is appended as an Entry with a kind tag and the
action's fields flattened to a generic map. Recorded runs can be dumped to
and loaded from YAML for inspection or fixtures, and replayed into a fresh
store to reconstruct a session.
*/
package journal

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aretw0/flux"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Entry is one recorded action.
type Entry struct {
	Time   time.Time      `json:"time" yaml:"time"`
	Kind   string         `json:"kind" yaml:"kind"`
	Fields map[string]any `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Journal accumulates entries for one store. Safe for concurrent use,
// though the store serializes dispatches anyway.
type Journal[S, A any] struct {
	mu      sync.Mutex
	entries []Entry
	kind    func(A) string
}

// New creates a Journal. kindFn derives the recorded kind tag from an
// action; when nil the dynamic type name is used. Kinds must be stable if
// the journal is meant to be replayed later.
func New[S, A any](kindFn func(A) string) *Journal[S, A] {
	if kindFn == nil {
		kindFn = func(a A) string { return fmt.Sprintf("%T", a) }
	}
	return &Journal[S, A]{kind: kindFn}
}

// Middleware returns the recording interceptor. It records the action as
// seen at its position in the chain, then forwards it unchanged. Place it
// after transforming middleware to record what the reducer will observe,
// or before to record what callers issued.
func (j *Journal[S, A]) Middleware() flux.Middleware[S, A] {
	return func(ctx context.Context, state flux.StateFn[S], dispatch flux.DispatchFn[A], next flux.DispatchFn[A], action A) {
		j.record(action)
		next(ctx, action)
	}
}

func (j *Journal[S, A]) record(action A) {
	entry := Entry{
		Time:   time.Now().UTC(),
		Kind:   j.kind(action),
		Fields: encodeFields(action),
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
}

// Entries returns a copy of the recorded entries in dispatch order.
func (j *Journal[S, A]) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len returns the number of recorded entries.
func (j *Journal[S, A]) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

// Reset discards all recorded entries.
func (j *Journal[S, A]) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = nil
}

// DumpYAML writes the recorded entries to w as a YAML document.
func (j *Journal[S, A]) DumpYAML(w io.Writer) error {
	entries := j.Entries()

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}
	return nil
}

// LoadYAML reads entries previously written by DumpYAML.
func LoadYAML(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode journal: %w", err)
	}
	return entries, nil
}

// encodeFields flattens an action into a generic map. Actions without
// exported fields record as an empty map; scalar actions are kept under a
// "value" key.
func encodeFields(action any) map[string]any {
	fields := map[string]any{}
	if err := mapstructure.Decode(action, &fields); err != nil {
		return map[string]any{"value": action}
	}
	return fields
}
