package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/flux"
	"github.com/aretw0/flux/internal/logging"
	"github.com/aretw0/flux/pkg/ports"
)

// Persist writes the settled state through snapshots after each dispatch
// that passes this point in the chain. The state is read post-next, so the
// snapshot reflects whatever the inner chain committed (the prior state
// again, if the action was suppressed further in).
//
// Persistence failures are logged and swallowed: the dispatch pipeline has
// no error channel, and a failed save must not look different from a
// settled dispatch to the caller.
func Persist[S, A any](snapshots ports.SnapshotStore, key string, logger *slog.Logger) flux.Middleware[S, A] {
	if logger == nil {
		logger = logging.NewNop()
	}

	return func(ctx context.Context, state flux.StateFn[S], dispatch flux.DispatchFn[A], next flux.DispatchFn[A], action A) {
		next(ctx, action)

		encoded, err := json.Marshal(state())
		if err != nil {
			logger.Error("failed to encode snapshot", "key", key, "error", err)
			return
		}
		if err := snapshots.Save(ctx, key, encoded); err != nil {
			logger.Error("failed to save snapshot", "key", key, "error", err)
		}
	}
}

// Restore loads the most recent snapshot for key and decodes it into a
// state value, returning fallback when no snapshot exists. Use it to seed
// flux.New when resuming a persisted store.
func Restore[S any](ctx context.Context, snapshots ports.SnapshotStore, key string, fallback S) (S, error) {
	encoded, err := snapshots.Load(ctx, key)
	if err != nil {
		if errors.Is(err, ports.ErrSnapshotNotFound) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}

	var state S
	if err := json.Unmarshal(encoded, &state); err != nil {
		return fallback, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	return state, nil
}
