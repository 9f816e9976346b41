package soundtracker

import (
	"log/slog"

	"github.com/aretw0/soundtracker/internal/platform"
	"github.com/aretw0/soundtracker/pkg/core"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Service is the state container for one project.
type Service = core.Service

// Row is a selected sound with its per-axis tags.
type Row = core.Row

// SoundDefinition is a catalog entry.
type SoundDefinition = core.SoundDefinition

// Totals holds the per-axis counts.
type Totals = core.Totals

// ProjectConfig is the content of soundtracker.yaml.
type ProjectConfig = platform.ProjectConfig

// --- Configuration ---

// Option defines a functional option for configuring soundtracker.
type Option = platform.Option

// WithLogger sets the logger for the service and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".soundtracker").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithDSN sets the sqlite connection string.
func WithDSN(dsn string) Option {
	return platform.WithDSN(dsn)
}

// WithStateKey changes the persistence slot.
func WithStateKey(key string) Option {
	return platform.WithStateKey(key)
}

// WithIDGenerator replaces the UUID row-ID generator.
func WithIDGenerator(gen core.IDGenerator) Option {
	return platform.WithIDGenerator(gen)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist ensures the project directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithWatchPattern restricts which files trigger live reloads.
func WithWatchPattern(pattern string) Option {
	return platform.WithWatchPattern(pattern)
}

// WithWatcherErrorHandler registers a callback for watch loop errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithEventBuffer allows specifying the buffer of watch channels.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithConfig applies a project config file.
func WithConfig(cfg *ProjectConfig) Option {
	return platform.WithConfig(cfg)
}

// --- Factory ---

// New creates a Service with the persisted state loaded.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// --- Utils ---

// FindProjectRoot recursively looks upwards for a project root indicator.
func FindProjectRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// LoadConfig reads and validates a soundtracker.yaml file.
func LoadConfig(path string) (*ProjectConfig, error) {
	return platform.LoadProjectConfig(path)
}

// LoadSounds reads custom sound definitions from a YAML file.
func LoadSounds(path string) ([]SoundDefinition, error) {
	return platform.LoadSoundFile(path)
}

// ResolveProjectRoot is FindProjectRoot falling back to startDir itself.
func ResolveProjectRoot(startDir string) (string, error) {
	return platform.ResolveRoot(startDir)
}

// DiscoverConfig loads <root>/soundtracker.yaml, returning nil when absent.
func DiscoverConfig(root string) (*ProjectConfig, error) {
	return platform.DiscoverConfig(root)
}
