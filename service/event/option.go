package event

import (
	"github.com/viant/correlations/service/messaging/memory"
	"go.uber.org/zap"
)

type Option func(s *Service)

// WithNewQueueConfig sets the per-queue configuration factory.
func WithNewQueueConfig(newConfig func(name string) memory.Config) Option {
	return func(s *Service) {
		s.newQueueConfig = newConfig
	}
}

// WithLogger sets the logger used by listeners.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}
