package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service is the state container for one project. It owns the current
// State, applies Commands to it and fans accepted transitions out to
// observers. Reads hand out deep copies.
type Service struct {
	repo            Repository
	key             string
	env             Env
	logger          *slog.Logger
	eventBufferSize int

	mu        sync.RWMutex
	state     State
	observers map[int]Observer
	nextObs   int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger used by the service and its persistence observer.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator replaces the default UUID row-ID generator.
func WithIDGenerator(gen IDGenerator) ServiceOption {
	return func(s *Service) {
		if gen != nil {
			s.env.NewID = gen
		}
	}
}

// WithBuiltinCatalog replaces the shipped sound table.
func WithBuiltinCatalog(c *StaticCatalog) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.env.Builtin = c
		}
	}
}

// WithKey changes the slot the snapshot is stored under.
func WithKey(key string) ServiceOption {
	return func(s *Service) {
		if key != "" {
			s.key = key
		}
	}
}

// WithEventBuffer sets the buffer of channels returned by Watch. Zero means default (100).
func WithEventBuffer(size int) ServiceOption {
	return func(s *Service) {
		if size > 0 {
			s.eventBufferSize = size
		}
	}
}

// NewService creates a Service backed by repo. The persistence observer is
// registered first, so every accepted transition is written to the slot
// before other observers run. A nil repo gives a purely in-memory service.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:            repo,
		key:             SnapshotKey,
		env:             Env{Builtin: Builtin(), NewID: uuid.NewString},
		logger:          slog.Default(),
		eventBufferSize: 100,
		state:           State{}.Clone(),
		observers:       make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(s)
	}
	if repo != nil {
		s.Subscribe(NewPersistObserver(repo, s.key, s.logger))
	}
	return s
}

// Load replaces the in-memory state with the persisted snapshot. Missing or
// malformed snapshots load as the empty state; problems are logged only.
func (s *Service) Load(ctx context.Context) {
	if s.repo == nil {
		return
	}
	st, err := LoadState(ctx, s.repo, s.key)
	if err != nil {
		s.logger.Warn("snapshot unreadable, starting empty", "key", s.key, "error", err)
	}
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.logger.Debug("state loaded", "key", s.key, "rows", len(st.Rows), "custom_sounds", len(st.CustomSounds))
}

// Subscribe registers an observer and returns a function that removes it.
func (s *Service) Subscribe(o Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = o
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Apply runs cmd against the current state. When the command changes the
// state, the new state is installed and observers are notified in
// registration order. It reports whether anything changed.
func (s *Service) Apply(ctx context.Context, cmd Command) (bool, error) {
	_, changed, err := s.apply(ctx, cmd)
	return changed, err
}

// apply is Apply returning a copy of the state the command installed, so
// callers can read their result without racing a concurrent reload.
func (s *Service) apply(ctx context.Context, cmd Command) (State, bool, error) {
	s.mu.Lock()
	next, changed, err := cmd.Apply(s.state, s.env)
	if err != nil || !changed {
		s.mu.Unlock()
		return State{}, false, err
	}
	s.state = next
	snapshot := next.Clone()
	observers := s.sortedObservers()
	s.mu.Unlock()

	ev := cmd.Event()
	ev.Timestamp = time.Now().Unix()
	for _, o := range observers {
		o.Observe(ctx, ev, snapshot.Clone())
	}
	return snapshot, true, nil
}

func (s *Service) sortedObservers() []Observer {
	out := make([]Observer, 0, len(s.observers))
	for i := 0; i < s.nextObs; i++ {
		if o, ok := s.observers[i]; ok {
			out = append(out, o)
		}
	}
	return out
}

// Add appends a row for soundID and returns it. ok is false when soundID
// does not resolve; nothing is created in that case.
func (s *Service) Add(ctx context.Context, soundID string) (row Row, ok bool) {
	installed, changed, _ := s.apply(ctx, AddSound{SoundID: soundID})
	if !changed {
		return Row{}, false
	}
	return installed.Rows[len(installed.Rows)-1], true
}

// Remove deletes a row. Unknown IDs are ignored.
func (s *Service) Remove(ctx context.Context, rowID string) bool {
	changed, _ := s.Apply(ctx, RemoveRowCmd{RowID: rowID})
	return changed
}

// Relabel sets a row label.
func (s *Service) Relabel(ctx context.Context, rowID, label string) bool {
	changed, _ := s.Apply(ctx, RelabelRowCmd{RowID: rowID, Label: label})
	return changed
}

// Toggle flips one attribute value on a row.
func (s *Service) Toggle(ctx context.Context, rowID string, axis Axis, value string) (bool, error) {
	return s.Apply(ctx, ToggleAttributeCmd{RowID: rowID, Axis: axis, Value: value})
}

// Clear drops all rows. Callers are expected to have confirmed with the user.
func (s *Service) Clear(ctx context.Context) bool {
	changed, _ := s.Apply(ctx, ClearRowsCmd{})
	return changed
}

// RegisterSound adds or replaces a custom sound definition.
func (s *Service) RegisterSound(ctx context.Context, d SoundDefinition) error {
	_, err := s.Apply(ctx, RegisterSound{Sound: d})
	return err
}

// UnregisterSound removes a custom sound definition.
func (s *Service) UnregisterSound(ctx context.Context, id string) bool {
	changed, _ := s.Apply(ctx, UnregisterSound{ID: id})
	return changed
}

// Replace swaps the row store wholesale. A nil customSounds keeps the
// current custom definitions.
func (s *Service) Replace(ctx context.Context, rows []Row, customSounds []SoundDefinition) error {
	_, err := s.Apply(ctx, ReplaceState{Rows: rows, CustomSounds: customSounds})
	return err
}

// Snapshot returns a deep copy of the current state.
func (s *Service) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Rows returns a deep copy of the rows in insertion order.
func (s *Service) Rows() []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CloneRows(s.state.Rows)
}

// CustomSounds returns a deep copy of the custom definitions.
func (s *Service) CustomSounds() []SoundDefinition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDefinitions(s.state.CustomSounds)
}

// Catalog returns the merged catalog as of now.
func (s *Service) Catalog() Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env.Catalog(s.state)
}

// Repository returns the backing repository, or nil for an in-memory service.
func (s *Service) Repository() Repository {
	return s.repo
}

// Builtin returns the built-in catalog.
func (s *Service) Builtin() *StaticCatalog {
	return s.env.Builtin
}

// Totals recomputes the per-axis counts from the current rows.
func (s *Service) Totals() Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Aggregate(s.state.Rows)
}

// Watch reloads the state whenever the repository reports an external change
// to the slot and emits an EventReload for each reload. The channel is closed
// when ctx is done or the upstream closes.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	upstream, err := w.Watch(ctx, s.key)
	if err != nil {
		return nil, err
	}

	out := make(chan Event, s.eventBufferSize)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-upstream:
				if !ok {
					return
				}
				s.Load(ctx)
				ev := Event{Type: EventReload, ID: e.ID, Timestamp: e.Timestamp}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
