package correlations

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/correlations/model"
	"github.com/viant/correlations/runtime/store"
	"github.com/viant/correlations/service/backend"
	"github.com/viant/correlations/service/backend/memory"
	"github.com/viant/correlations/service/backend/rest"
	"github.com/viant/correlations/service/event"
	"github.com/viant/correlations/service/projection"
	"github.com/viant/correlations/service/registry"
	"github.com/viant/correlations/service/registry/fs"
	"github.com/viant/scy"
	"go.uber.org/zap"
)

// Service wires a backend, a data-source registry and a store.
type Service struct {
	config        *Config
	backend       backend.Service
	resolver      registry.Resolver
	policy        projection.Policy
	readOnly      *bool
	logger        *zap.Logger
	eventService  *event.Service
	secrets       *scy.Service
	metaBaseURL   string
	metaFsOptions []storage.Option
	store         *store.Store
}

// Activate performs the initial fetch; later calls are no-ops.
func (s *Service) Activate(ctx context.Context) error {
	return s.store.Activate(ctx)
}

// Reload re-fetches the correlation list.
func (s *Service) Reload(ctx context.Context) error {
	return s.store.Reload(ctx)
}

// Create adds a correlation.
func (s *Service) Create(ctx context.Context, input *model.NewCorrelation) (*model.View, error) {
	if !s.CanWrite() {
		return nil, ErrReadOnly
	}
	return s.store.Create(ctx, input)
}

// Update changes label and description of a correlation.
func (s *Service) Update(ctx context.Context, input *model.UpdateCorrelation) (*model.View, error) {
	if !s.CanWrite() {
		return nil, ErrReadOnly
	}
	return s.store.Update(ctx, input)
}

// Remove deletes a correlation.
func (s *Service) Remove(ctx context.Context, ref model.Ref) error {
	if !s.CanWrite() {
		return ErrReadOnly
	}
	return s.store.Remove(ctx, ref)
}

// State returns a snapshot of the store.
func (s *Service) State() store.State {
	return s.store.State()
}

// Subscribe registers a state change handler.
func (s *Service) Subscribe(handler func(store.State)) {
	s.store.Subscribe(handler)
}

// CanWrite reports whether mutations are allowed.
func (s *Service) CanWrite() bool {
	return !*s.readOnly
}

func (s *Service) Store() *store.Store {
	return s.store
}

func (s *Service) Backend() backend.Service {
	return s.backend
}

func (s *Service) Registry() registry.Resolver {
	return s.resolver
}

func (s *Service) Config() *Config {
	return s.config
}

// Close releases the store.
func (s *Service) Close() {
	s.store.Close()
}

func (s *Service) init(ctx context.Context, options []Option) error {
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.readOnly == nil {
		s.readOnly = &s.config.ReadOnly
	}
	if s.policy == "" {
		s.policy, _ = projection.ParsePolicy(s.config.Resolution.Policy)
	}
	if s.resolver == nil {
		resolver, err := s.loadRegistry(ctx)
		if err != nil {
			return err
		}
		s.resolver = resolver
	}
	if s.backend == nil {
		service, err := s.newBackend(ctx)
		if err != nil {
			return err
		}
		s.backend = service
	}
	storeOptions := []store.Option{store.WithLogger(s.logger), store.WithPolicy(s.policy)}
	if s.eventService != nil {
		storeOptions = append(storeOptions, store.WithEventService(s.eventService))
	}
	s.store = store.New(s.backend, s.resolver, storeOptions...)
	return nil
}

func (s *Service) loadRegistry(ctx context.Context) (registry.Resolver, error) {
	loader := fs.New(afs.New(), s.metaBaseURL, s.metaFsOptions...)
	ret, err := loader.LoadRegistry(ctx, s.config.Registry.URLs...)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	if err = ret.Register(ctx, s.config.Registry.DataSources...); err != nil {
		return nil, fmt.Errorf("failed to register datasources: %w", err)
	}
	return ret, nil
}

func (s *Service) newBackend(ctx context.Context) (backend.Service, error) {
	cfg := s.config.Backend
	if cfg.URL == "" {
		s.logger.Info("no backend url configured, using in-memory backend")
		return memory.New(memory.WithRegistry(s.resolver), memory.WithLogger(s.logger)), nil
	}
	options := []rest.Option{rest.WithLogger(s.logger)}
	if cfg.TimeoutMs > 0 {
		options = append(options, rest.WithTimeout(cfg.Timeout()))
	}
	if cfg.OrgID != "" {
		options = append(options, rest.WithOrgID(cfg.OrgID))
	}
	if creds := cfg.Credentials; creds != nil {
		option, err := rest.CredentialsOption(ctx, s.secrets, creds.URL, creds.Key, creds.Kind)
		if err != nil {
			return nil, err
		}
		options = append(options, option)
	}
	return rest.New(cfg.URL, options...)
}

// New creates a service. The store is not activated.
func New(ctx context.Context, options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(ctx, options); err != nil {
		return nil, err
	}
	return ret, nil
}
