package core

import "context"

// SnapshotKey is the slot the state snapshot lives under.
const SnapshotKey = "sound-tracker:v1"

// Repository is a string-keyed slot store. The engine keeps a single JSON
// snapshot in it; adapters decide where the bytes go (file, SQLite, memory).
type Repository interface {
	// Initialize ensures the underlying storage is ready (directories, schema).
	Initialize(ctx context.Context) error

	// Read returns the slot contents, or ErrNotFound when the slot is empty.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the slot contents.
	Write(ctx context.Context, key string, data []byte) error
}

// Watchable is implemented by repositories that can report external changes
// to a slot (e.g. another process writing the same file).
type Watchable interface {
	Watch(ctx context.Context, key string) (<-chan Event, error)
}
