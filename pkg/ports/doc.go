/*
Package ports defines the driven ports (interfaces) for the flux engine.

These interfaces decouple persistence effects from concrete backends,
allowing the Persist middleware to work against in-memory, Redis, or any
other snapshot storage.

# Key Interfaces

  - SnapshotStore: Responsible for persisting and loading encoded state snapshots.
*/
package ports
