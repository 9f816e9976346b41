package platform

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aretw0/soundtracker/pkg/adapters/fs"
	"github.com/aretw0/soundtracker/pkg/adapters/memory"
	"github.com/aretw0/soundtracker/pkg/adapters/sqlite"
	"github.com/aretw0/soundtracker/pkg/core"
)

// Init prepares the storage for a project and returns the configured
// core.Repository. The 'uri' argument is the project root for the fs and
// sqlite adapters and is ignored by memory.
func Init(uri string, opts ...Option) (core.Repository, error) {
	return initRepository(uri, buildOptions(opts))
}

func initRepository(uri string, o *options) (core.Repository, error) {
	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Initialize based on Adapter
	var repo core.Repository
	var err error

	switch o.adapter {
	case "fs":
		repo, err = initFS(uri, o)
	case "sqlite":
		repo, err = initSQLite(uri, o)
	case "memory":
		repo = initMemory(o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	// 3. Run Initialization
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}

	if o.logger != nil {
		o.logger.Debug("repository initialized", "adapter", o.adapter, "uri", uri)
	}
	return repo, nil
}

func systemDir(o *options) string {
	if dir, _ := o.config["system_dir"].(string); dir != "" {
		return dir
	}
	return fs.DefaultSystemDir
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(path string, o *options) (core.Repository, error) {
	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	pattern, _ := o.config["watch_pattern"].(string)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	resolved, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving project path: %w", err)
	}

	return fs.NewRepository(fs.Config{
		Path:         resolved,
		SystemDir:    systemDir(o),
		MustExist:    mustExist,
		ReadOnly:     readOnly,
		Logger:       o.logger,
		WatchPattern: pattern,
		ErrorHandler: errorHandler,
	}), nil
}

// initSQLite opens the sqlite adapter. Without an explicit DSN the database
// lives at <root>/<system dir>/soundtracker.db.
func initSQLite(path string, o *options) (core.Repository, error) {
	readOnly, _ := o.config["read_only"].(bool)
	dsn, _ := o.config["dsn"].(string)
	if dsn == "" {
		resolved, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving project path: %w", err)
		}
		dsn = sqlite.DSNForPath(filepath.Join(resolved, systemDir(o), sqlite.DefaultFile))
	}

	repo, err := sqlite.NewRepository(sqlite.Config{
		DSN:      dsn,
		ReadOnly: readOnly,
		Logger:   o.logger,
	})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func initMemory(o *options) core.Repository {
	var opts []memory.Option
	if readOnly, _ := o.config["read_only"].(bool); readOnly {
		opts = append(opts, memory.WithReadOnly())
	}
	return memory.New(opts...)
}
