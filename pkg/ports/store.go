package ports

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned by Load when no snapshot exists for a key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore defines the interface for persisting encoded state
// snapshots. The engine core never touches persistence; the Persist
// middleware writes settled states through this port, and hosts read them
// back to seed a new store ("Stop & Resume").
//
// Snapshots are opaque bytes: encoding is decided by the caller.
type SnapshotStore interface {
	// Save persists the snapshot for a given store key, overwriting any
	// previous snapshot.
	Save(ctx context.Context, key string, snapshot []byte) error

	// Load retrieves the snapshot for a given store key.
	// Returns ErrSnapshotNotFound if no snapshot exists.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes the snapshot for a given store key.
	Delete(ctx context.Context, key string) error
}
