package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Key             string `json:"key"`
	Rows            int    `json:"rows"`
	CustomSounds    int    `json:"custom_sounds"`
	BuiltinSounds   int    `json:"builtin_sounds"`
	Observers       int    `json:"observers"`
	EventBufferSize int    `json:"event_buffer_size"`
	RepositoryType  string `json:"repository_type"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repoType := "none"
	if s.repo != nil {
		repoType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	return ServiceState{
		Key:             s.key,
		Rows:            len(s.state.Rows),
		CustomSounds:    len(s.state.CustomSounds),
		BuiltinSounds:   len(s.env.Builtin.All()),
		Observers:       len(s.observers),
		EventBufferSize: s.eventBufferSize,
		RepositoryType:  repoType,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
