package memsim

import (
	"context"
	"io"

	"github.com/viant/memsim/model/process"
	"github.com/viant/memsim/service/dao"
	"github.com/viant/memsim/service/pool"
	"github.com/viant/memsim/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures a Service
type Option func(s *Service)

// WithConfig sets the service configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithOutput sets the writer receiving one line per lifecycle notice
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		s.output = w
	}
}

// WithObserver registers additional pool observers
func WithObserver(observers ...pool.Observer) Option {
	return func(s *Service) {
		s.observers = append(s.observers, observers...)
	}
}

// WithContext sets the parent context of every process run; cancelling it
// interrupts all running processes.
func WithContext(ctx context.Context) Option {
	return func(s *Service) {
		s.ctx = ctx
	}
}

// WithProcessDAO sets the process registry
func WithProcessDAO(processes dao.Service[int, process.Process]) Option {
	return func(s *Service) {
		s.processes = processes
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter. The first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
