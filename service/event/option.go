package event

import "github.com/viant/memsim/service/messaging/memory"

type Option func(s *Service)

// WithNewMemoryQueueConfig sets the factory of per-type memory queue configurations
func WithNewMemoryQueueConfig(newConfig func(name string) memory.Config) Option {
	return func(s *Service) {
		s.memNewQueueConfig = newConfig
	}
}
