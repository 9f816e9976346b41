// Package memory provides an in-process repository for tests and
// ephemeral sessions.
package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/soundtracker/pkg/core"
)

// Repository keeps slots in a map. The zero value is not usable; call New.
type Repository struct {
	mu       sync.RWMutex
	slots    map[string][]byte
	readOnly bool
}

// Option configures a Repository.
type Option func(*Repository)

// WithReadOnly rejects every Write with core.ErrReadOnly.
func WithReadOnly() Option {
	return func(r *Repository) { r.readOnly = true }
}

// WithSlot seeds a slot.
func WithSlot(key string, data []byte) Option {
	return func(r *Repository) { r.slots[key] = bytes.Clone(data) }
}

// New creates an empty repository.
func New(opts ...Option) *Repository {
	r := &Repository{slots: make(map[string][]byte)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) Initialize(ctx context.Context) error { return nil }

func (r *Repository) Read(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.slots[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return bytes.Clone(data), nil
}

func (r *Repository) Write(ctx context.Context, key string, data []byte) error {
	if r.readOnly {
		return core.ErrReadOnly
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[key] = bytes.Clone(data)
	return nil
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.slots))
	for k := range r.slots {
		keys = append(keys, k)
	}
	return map[string]any{"slots": keys, "read_only": r.readOnly}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string { return "memory" }

var (
	_ core.Repository              = (*Repository)(nil)
	_ introspection.Introspectable = (*Repository)(nil)
	_ introspection.Component      = (*Repository)(nil)
)
