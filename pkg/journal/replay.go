package journal

import (
	"context"
	"fmt"

	"github.com/aretw0/flux"
	"github.com/mitchellh/mapstructure"
)

// Decoder reconstructs an action of a given kind from its recorded fields.
// Implementations typically switch on kind and call DecodeFields into the
// matching action type.
type Decoder[A any] func(kind string, fields map[string]any) (A, error)

// DecodeFields fills out (a pointer to an action value) from recorded
// fields, tolerating the loose typing YAML round-trips introduce (e.g.
// ints read back for float fields).
func DecodeFields(fields map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build field decoder: %w", err)
	}
	return dec.Decode(fields)
}

// Replay re-dispatches recorded entries, in order, into store. The store
// should carry the same reducer (and compatible middleware) as the one
// that produced the journal for the replay to reconstruct the same states.
// Replay stops at the first entry the decoder rejects.
func Replay[S, A any](ctx context.Context, entries []Entry, store *flux.Store[S, A], decode Decoder[A]) error {
	for i, entry := range entries {
		action, err := decode(entry.Kind, entry.Fields)
		if err != nil {
			return fmt.Errorf("failed to decode entry %d (%s): %w", i, entry.Kind, err)
		}
		store.Dispatch(ctx, action)
	}
	return nil
}
