package runner

import (
	"context"
	"time"
)

// Option configures the runner service
type Option func(*Service)

// WithConfig sets the runner configuration
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithTimeUnit sets the wall-clock length of one simulated second
func WithTimeUnit(unit time.Duration) Option {
	return func(s *Service) {
		s.config.TimeUnit = unit
	}
}

// WithCompleter sets the completion callback target
func WithCompleter(completer Completer) Option {
	return func(s *Service) {
		s.completer = completer
	}
}

// WithContext sets the parent context of every process run
func WithContext(ctx context.Context) Option {
	return func(s *Service) {
		s.parent = ctx
	}
}
