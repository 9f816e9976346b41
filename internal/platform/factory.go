package platform

import (
	"context"

	"github.com/aretw0/soundtracker/pkg/core"
)

// New initializes the storage and returns a service holding the persisted
// state. The URI argument is adapter-specific (project root for fs/sqlite).
//
//	svc, err := soundtracker.New("./my-song", soundtracker.WithAdapter("sqlite"))
func New(uri string, opts ...Option) (*core.Service, error) {
	o := buildOptions(opts)

	repo, err := initRepository(uri, o)
	if err != nil {
		return nil, err
	}

	svcOpts := []core.ServiceOption{
		core.WithKey(o.stateKey),
		core.WithServiceLogger(o.logger),
		core.WithIDGenerator(o.idGen),
	}
	if size, ok := o.config["event_buffer"].(int); ok {
		svcOpts = append(svcOpts, core.WithEventBuffer(size))
	}

	service := core.NewService(repo, svcOpts...)
	service.Load(context.Background())
	return service, nil
}
