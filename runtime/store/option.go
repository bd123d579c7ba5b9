package store

import (
	"github.com/viant/correlations/service/event"
	"github.com/viant/correlations/service/projection"
	"go.uber.org/zap"
)

// Option customises a Store.
type Option func(s *Store)

// WithPolicy sets how correlations referencing unknown data sources are
// handled; the default is projection.Strict.
func WithPolicy(policy projection.Policy) Option {
	return func(s *Store) {
		s.policy = policy
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithEventService publishes state changes on the supplied service.
func WithEventService(service *event.Service) Option {
	return func(s *Store) {
		s.events = service
	}
}
