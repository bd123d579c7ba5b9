package correlations

import (
	"github.com/viant/afs/storage"
	"github.com/viant/correlations/service/backend"
	"github.com/viant/correlations/service/event"
	"github.com/viant/correlations/service/projection"
	"github.com/viant/correlations/service/registry"
	"github.com/viant/correlations/tracing"
	"github.com/viant/scy"
	"go.uber.org/zap"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises a Service. Options take precedence over Config.
type Option func(s *Service)

// WithConfig sets the configuration; DefaultConfig is used otherwise.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithBackend sets the backend, bypassing Config.Backend.
func WithBackend(service backend.Service) Option {
	return func(s *Service) {
		s.backend = service
	}
}

// WithRegistry sets the data-source resolver, bypassing Config.Registry.
func WithRegistry(resolver registry.Resolver) Option {
	return func(s *Service) {
		s.resolver = resolver
	}
}

// WithPolicy sets the unresolved data-source policy.
func WithPolicy(policy projection.Policy) Option {
	return func(s *Service) {
		s.policy = policy
	}
}

// WithReadOnly disables mutations.
func WithReadOnly(readOnly bool) Option {
	return func(s *Service) {
		s.readOnly = &readOnly
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.eventService = service
	}
}

// WithSecrets sets the scy service used to load backend credentials.
func WithSecrets(secrets *scy.Service) Option {
	return func(s *Service) {
		s.secrets = secrets
	}
}

// WithMetaBaseURL sets the base URL relative registry documents resolve against.
func WithMetaBaseURL(url string) Option {
	return func(s *Service) {
		s.metaBaseURL = url
	}
}

// WithMetaFsOptions with meta file system options
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.metaFsOptions = options
	}
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used. The first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing with a custom exporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
