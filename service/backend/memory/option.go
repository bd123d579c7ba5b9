package memory

import (
	"github.com/viant/correlations/model"
	"github.com/viant/correlations/service/registry"
	"go.uber.org/zap"
)

// Option customises a Server.
type Option func(s *Server)

// WithRegistry makes the server validate data sources: unknown sources or
// targets answer 404 and read-only sources reject mutations with 403.
func WithRegistry(resolver registry.Resolver) Option {
	return func(s *Server) {
		s.registry = resolver
	}
}

// WithCorrelations seeds the collection. Entries without a UID get one.
func WithCorrelations(correlations ...*model.Correlation) Option {
	return func(s *Server) {
		s.seed = append(s.seed, correlations...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}
