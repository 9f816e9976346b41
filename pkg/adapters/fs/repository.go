package fs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/soundtracker/pkg/core"
)

// DefaultSystemDir is the hidden directory holding the slot files.
const DefaultSystemDir = ".soundtracker"

// Repository implements core.Repository with one JSON file per slot under
// <Path>/<SystemDir>.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastReload    *time.Time
	lastWrite     map[string][]byte // filename -> bytes we wrote, to ignore our own events
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	SystemDir string // e.g. ".soundtracker"
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger
	// WatchPattern filters watched files by base name (doublestar syntax).
	// Empty means the slot file only.
	WatchPattern string
	ErrorHandler func(error)
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Repository{
		Path:      config.Path,
		config:    config,
		lastWrite: make(map[string][]byte),
	}
}

// Dir is the directory that holds the slot files.
func (r *Repository) Dir() string {
	return filepath.Join(r.Path, r.config.SystemDir)
}

// SlotPath maps a slot key to its file, e.g. "sound-tracker:v1" to
// <Dir>/sound-tracker.v1.json.
func (r *Repository) SlotPath(key string) (string, error) {
	name, err := slotFileName(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.Dir(), name), nil
}

func slotFileName(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("slot key is empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return strings.ReplaceAll(key, ":", ".") + ".json", nil
}

// Initialize prepares the project directory and the system directory.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("project path does not exist: %s", r.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat project path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("project path is not a directory: %s", r.Path)
		}
	}
	if r.config.ReadOnly {
		return nil
	}
	if err := os.MkdirAll(r.Dir(), 0755); err != nil {
		return fmt.Errorf("failed to create system directory: %w", err)
	}
	return nil
}

// Read returns the slot content, or core.ErrNotFound when the file is absent.
func (r *Repository) Read(ctx context.Context, key string) ([]byte, error) {
	path, err := r.SlotPath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Write replaces the slot content atomically.
func (r *Repository) Write(ctx context.Context, key string, data []byte) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := r.SlotPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create system directory: %w", err)
	}

	// Recorded under the lock before the rename lands, so the watcher can
	// tell our own event apart. A failed write must not stay recorded.
	r.mu.Lock()
	name := filepath.Base(path)
	previous, hadPrevious := r.lastWrite[name]
	r.lastWrite[name] = bytes.Clone(data)
	r.mu.Unlock()

	if err := writeFileAtomic(path, data, 0644); err != nil {
		r.mu.Lock()
		if hadPrevious {
			r.lastWrite[name] = previous
		} else {
			delete(r.lastWrite, name)
		}
		r.mu.Unlock()
		return err
	}
	r.config.Logger.Debug("slot written", "path", path, "bytes", len(data))
	return nil
}

// Watch emits a core.EventReload with the slot key whenever the slot file is
// changed by someone else. The channel is closed when ctx is done.
func (r *Repository) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	name, err := slotFileName(key)
	if err != nil {
		return nil, err
	}
	pattern := r.config.WatchPattern
	if pattern == "" {
		pattern = name
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	if !r.config.ReadOnly {
		if err := os.MkdirAll(r.Dir(), 0755); err != nil {
			return nil, fmt.Errorf("failed to create system directory: %w", err)
		}
	}

	events := make(chan core.Event, 16)
	w := newWatchWorker(r, key, pattern, events)
	if err := w.Start(ctx); err != nil {
		close(events)
		return nil, err
	}
	return events, nil
}

// shouldIgnore filters temp files, non-matching names and events caused by
// our own writes.
func (r *Repository) shouldIgnore(path, pattern string) bool {
	base := filepath.Base(path)
	if isTempFile(base) {
		return true
	}
	matched, err := doublestar.Match(pattern, base)
	if err != nil || !matched {
		return true
	}

	r.mu.RLock()
	written, ok := r.lastWrite[base]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	current, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Equal(current, written)
}

var (
	_ core.Repository = (*Repository)(nil)
	_ core.Watchable  = (*Repository)(nil)
)
