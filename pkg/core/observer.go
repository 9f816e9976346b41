package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Observer is notified after every accepted transition, with the new state.
type Observer interface {
	Observe(ctx context.Context, ev Event, s State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev Event, s State)

func (f ObserverFunc) Observe(ctx context.Context, ev Event, s State) { f(ctx, ev, s) }

// PersistObserver writes the snapshot to a repository slot after each
// transition. Failures are logged and swallowed: the in-memory state stays
// authoritative and is never rolled back.
type PersistObserver struct {
	repo   Repository
	key    string
	logger *slog.Logger
}

// NewPersistObserver creates an observer writing to repo under key.
func NewPersistObserver(repo Repository, key string, logger *slog.Logger) *PersistObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersistObserver{repo: repo, key: key, logger: logger}
}

func (p *PersistObserver) Observe(ctx context.Context, ev Event, s State) {
	if err := SaveState(ctx, p.repo, p.key, s); err != nil {
		p.logger.Warn("failed to persist state", "key", p.key, "event", ev.String(), "error", err)
		return
	}
	p.logger.Debug("state persisted", "key", p.key, "rows", len(s.Rows))
}

// SaveState encodes s and writes it to the slot.
func SaveState(ctx context.Context, repo Repository, key string, s State) error {
	data, err := json.Marshal(s.Clone())
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return repo.Write(ctx, key, data)
}

// LoadState reads the snapshot from the slot. A missing slot yields the
// empty state with no error. A malformed snapshot or a failed read also
// yields the empty state, together with an error the caller may log; neither
// is fatal.
func LoadState(ctx context.Context, repo Repository, key string) (State, error) {
	data, err := repo.Read(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return State{}.Clone(), nil
	}
	if err != nil {
		return State{}.Clone(), fmt.Errorf("failed to read snapshot: %w", err)
	}
	return DecodeSnapshot(data)
}

// DecodeSnapshot parses a persisted snapshot. On failure it still returns
// the usable empty state. Rows repeating an earlier rowId are dropped.
func DecodeSnapshot(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}.Clone(), fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	s = s.Clone()
	s.Rows, _ = UniqueRows(s.Rows)
	return s, nil
}
