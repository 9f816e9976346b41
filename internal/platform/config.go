package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/soundtracker/pkg/core"
)

// ConfigFileName is the optional project config at the project root.
const ConfigFileName = "soundtracker.yaml"

// ProjectConfig is the content of soundtracker.yaml.
type ProjectConfig struct {
	Adapter      string `yaml:"adapter,omitempty"`
	DSN          string `yaml:"dsn,omitempty"`
	SystemDir    string `yaml:"system_dir,omitempty"`
	Key          string `yaml:"key,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
	WatchPattern string `yaml:"watch_pattern,omitempty"`
}

// SoundFile is a YAML document of custom sound definitions.
type SoundFile struct {
	Sounds []core.SoundDefinition `yaml:"sounds"`
}

var adapters = []string{"fs", "sqlite", "memory"}

// LoadProjectConfig reads and validates a project config file.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

// DiscoverConfig loads <root>/soundtracker.yaml. A missing file is not an
// error and yields nil.
func DiscoverConfig(root string) (*ProjectConfig, error) {
	path := filepath.Join(root, ConfigFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return LoadProjectConfig(path)
}

// WriteProjectConfig writes cfg as YAML, refusing to overwrite an existing file.
func WriteProjectConfig(path string, cfg ProjectConfig) error {
	if err := validateProjectConfig(&cfg); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding project config: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("writing project config: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing project config: %w", err)
	}
	return nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	cfg.Adapter = strings.ToLower(strings.TrimSpace(cfg.Adapter))
	if cfg.Adapter != "" && !slices.Contains(adapters, cfg.Adapter) {
		return fmt.Errorf("unknown adapter: %s", cfg.Adapter)
	}
	if cfg.DSN != "" && !strings.HasPrefix(cfg.DSN, "sqlite://") {
		return fmt.Errorf("dsn must use the sqlite:// scheme")
	}
	if cfg.DSN != "" && cfg.Adapter != "" && cfg.Adapter != "sqlite" {
		return fmt.Errorf("dsn is only valid with the sqlite adapter")
	}
	if strings.ContainsAny(cfg.SystemDir, `/\`) {
		return fmt.Errorf("system_dir must be a directory name, not a path")
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel maps debug/info/warn/error to a slog level. Empty is info.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unsupported log_level: %s", s)
}

// LoadSoundFile reads custom sound definitions from YAML. Every entry needs
// a unique id; an empty name defaults to the id.
func LoadSoundFile(path string) ([]core.SoundDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading sound file: %w", err)
	}

	var file SoundFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("loading sound file: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Sounds))
	out := make([]core.SoundDefinition, 0, len(file.Sounds))
	for i, d := range file.Sounds {
		d.ID = strings.TrimSpace(d.ID)
		if d.ID == "" {
			return nil, fmt.Errorf("loading sound file: sound %d id is required", i)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("loading sound file: duplicate sound id: %s", d.ID)
		}
		seen[d.ID] = struct{}{}
		if d.Name == "" {
			d.Name = d.ID
		}
		d.FreqBands = core.NewAttributeSet(d.FreqBands...)
		d.StereoPresences = core.NewAttributeSet(d.StereoPresences...)
		d.Depths = core.NewAttributeSet(d.Depths...)
		d.Shapes = core.NewAttributeSet(d.Shapes...)
		out = append(out, d)
	}
	return out, nil
}
