package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	SystemDir     string     `json:"system_dir"`
	ReadOnly      bool       `json:"read_only"`
	WatchPattern  string     `json:"watch_pattern,omitempty"`
	WatcherActive bool       `json:"watcher_active"`
	LastReload    *time.Time `json:"last_reload,omitempty"`
	Slots         []string   `json:"slots,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slots := make([]string, 0, len(r.lastWrite))
	for name := range r.lastWrite {
		slots = append(slots, name)
	}

	return RepositoryState{
		Path:          r.Path,
		SystemDir:     r.config.SystemDir,
		ReadOnly:      r.config.ReadOnly,
		WatchPattern:  r.config.WatchPattern,
		WatcherActive: r.watcherActive,
		LastReload:    r.lastReload,
		Slots:         slots,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

func (r *Repository) recordReload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastReload = &now
}
