package platform

import (
	"log/slog"

	"github.com/aretw0/soundtracker/pkg/core"
)

// options holds the internal configuration for the soundtracker service.
type options struct {
	repository core.Repository
	logger     *slog.Logger
	adapter    string
	stateKey   string
	idGen      core.IDGenerator
	config     map[string]interface{}
}

// Option defines a functional option for configuring soundtracker.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		repository: nil,
		logger:     nil,
		adapter:    "fs",
		stateKey:   core.SnapshotKey,
		config:     make(map[string]interface{}),
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for the service and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. a mock).
// If provided, adapter selection is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter selects the storage adapter by name: "fs", "sqlite" or "memory".
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		if name != "" {
			o.adapter = name
		}
	}
}

// WithSystemDir sets the hidden directory name (e.g. ".soundtracker").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithDSN sets the connection string for the sqlite adapter
// (e.g. "sqlite://./data/tracker.db"). Defaults to a file under the system dir.
func WithDSN(dsn string) Option {
	return func(o *options) {
		o.config["dsn"] = dsn
	}
}

// WithStateKey changes the slot the snapshot is persisted under.
func WithStateKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.stateKey = key
		}
	}
}

// WithIDGenerator replaces the UUID row-ID generator.
func WithIDGenerator(gen core.IDGenerator) Option {
	return func(o *options) {
		o.idGen = gen
	}
}

// WithEventBuffer allows specifying the buffer of watch channels.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithMustExist ensures the project directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Writes return ErrReadOnly; the persistence observer logs and moves on.
// 2. Initialization (mkdir) is skipped.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithWatchPattern restricts which files in the system directory trigger
// reloads (doublestar syntax, matched against base names).
func WithWatchPattern(pattern string) Option {
	return func(o *options) {
		o.config["watch_pattern"] = pattern
	}
}

// WithWatcherErrorHandler registers a callback for errors raised inside the
// watch loop, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithConfig applies the values of a project config file. Options given
// after it take precedence.
func WithConfig(cfg *ProjectConfig) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}
		if cfg.Adapter != "" {
			o.adapter = cfg.Adapter
		}
		if cfg.DSN != "" {
			o.config["dsn"] = cfg.DSN
		}
		if cfg.SystemDir != "" {
			o.config["system_dir"] = cfg.SystemDir
		}
		if cfg.Key != "" {
			o.stateKey = cfg.Key
		}
		if cfg.WatchPattern != "" {
			o.config["watch_pattern"] = cfg.WatchPattern
		}
	}
}
