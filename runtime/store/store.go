package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/correlations/internal/clock"
	"github.com/viant/correlations/model"
	"github.com/viant/correlations/service/backend"
	"github.com/viant/correlations/service/event"
	"github.com/viant/correlations/service/projection"
	"github.com/viant/correlations/service/registry"
	"github.com/viant/correlations/tracing"
	"go.uber.org/zap"
)

const (
	component = "correlations.store"
	// StateChanged is the event type published whenever the state changes.
	StateChanged = "stateChanged"
)

// Store owns the visible correlation list. It is safe for concurrent use.
type Store struct {
	backend  backend.Service
	resolver registry.Resolver
	policy   projection.Policy
	logger   *zap.Logger
	events   *event.Service
	owned    bool

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once

	// publishing serialises state transitions with their events so that
	// subscribers observe snapshots in the order they were produced.
	publishing sync.Mutex
	mu         sync.Mutex
	state      State
	issued     uint64
	applied    uint64
	inFlight   int
	closed     bool
}

// Activate performs the initial fetch. Only the first call reaches the backend.
func (s *Store) Activate(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		err = s.Reload(ctx)
	})
	return err
}

// Reload re-fetches the whole list. The response is applied only when no
// later-issued reload has been applied already. The returned error is the
// outcome of this call's request.
func (s *Store) Reload(ctx context.Context) (err error) {
	ctx, release, err := s.scope(ctx)
	if err != nil {
		return err
	}
	defer release()
	seq, ok := s.begin()
	if !ok {
		return ErrClosed
	}
	ctx, span := tracing.StartSpan(ctx, "correlations.reload", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()

	var views []*model.View
	var correlations []*model.Correlation
	if err = s.backend.Get(ctx, backend.CorrelationsPath, &correlations); err == nil {
		views, err = s.project(correlations)
	}
	if !s.finish(seq, views, err) {
		s.logger.Debug("discarded stale reload", zap.Uint64("sequence", seq), zap.Error(err))
	}
	return err
}

// Create posts a new correlation, waits for the list to be re-fetched and
// returns the created entity as a view.
func (s *Store) Create(ctx context.Context, input *model.NewCorrelation) (*model.View, error) {
	if input == nil {
		return nil, fmt.Errorf("correlation was nil")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	ctx, release, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	created := &model.Correlation{}
	if err = s.backend.Post(ctx, backend.SourceCorrelationsPath(input.SourceUID), input.Body(), created); err != nil {
		return nil, err
	}
	if created.SourceUID == "" {
		created.SourceUID = input.SourceUID
	}
	s.logger.Info("created correlation", zap.String("uid", created.UID), zap.String("sourceUID", created.SourceUID), zap.String("targetUID", created.TargetUID))
	s.resync(ctx)
	return s.view(created)
}

// Update patches label and description, waits for the list to be re-fetched
// and returns the updated entity as a view.
func (s *Store) Update(ctx context.Context, input *model.UpdateCorrelation) (*model.View, error) {
	if input == nil {
		return nil, fmt.Errorf("correlation was nil")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	ctx, release, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	updated := &model.Correlation{}
	if err = s.backend.Patch(ctx, backend.CorrelationPath(input.SourceUID, input.UID), input.Body(), updated); err != nil {
		return nil, err
	}
	if updated.UID == "" {
		updated.UID = input.UID
	}
	if updated.SourceUID == "" {
		updated.SourceUID = input.SourceUID
	}
	s.logger.Info("updated correlation", zap.String("uid", updated.UID), zap.String("sourceUID", updated.SourceUID))
	s.resync(ctx)
	return s.view(updated)
}

// Remove deletes a correlation and waits for the list to be re-fetched.
func (s *Store) Remove(ctx context.Context, ref model.Ref) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	ctx, release, err := s.scope(ctx)
	if err != nil {
		return err
	}
	defer release()
	if err = s.backend.Delete(ctx, backend.CorrelationPath(ref.SourceUID, ref.UID)); err != nil {
		return err
	}
	s.logger.Info("removed correlation", zap.String("uid", ref.UID), zap.String("sourceUID", ref.SourceUID))
	s.resync(ctx)
	return nil
}

// State returns a snapshot. The Correlations slice and its views are owned by
// the caller; the Source and Target descriptors belong to the registry.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers handler for state changes, replacing any previous one.
func (s *Store) Subscribe(handler func(State)) {
	event.SetListenerOf[State](s.events, func(e *event.Event[State]) {
		handler(e.Data)
	})
}

// Close aborts in-flight requests and discards the list. Responses arriving
// afterwards are ignored.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.state = State{}
	s.mu.Unlock()
	s.cancel()
	if s.owned {
		s.events.Close()
	}
}

func (s *Store) scope(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if s.isClosed() {
		return nil, nil, ErrClosed
	}
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}, nil
}

func (s *Store) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Store) begin() (uint64, bool) {
	s.publishing.Lock()
	defer s.publishing.Unlock()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, false
	}
	s.issued++
	seq := s.issued
	s.inFlight++
	s.state.Loading = true
	snapshot := s.state.clone()
	s.mu.Unlock()
	s.publish(snapshot)
	return seq, true
}

func (s *Store) finish(seq uint64, views []*model.View, err error) bool {
	s.publishing.Lock()
	defer s.publishing.Unlock()
	s.mu.Lock()
	s.inFlight--
	if s.closed {
		s.mu.Unlock()
		return false
	}
	applied := seq > s.applied
	if applied {
		s.applied = seq
		s.state.Sequence = seq
		s.state.UpdatedAt = clock.Now()
		if err != nil {
			s.state.Error = err
		} else {
			s.state.Correlations = views
			s.state.Error = nil
			s.state.Loaded = true
		}
	}
	s.state.Loading = s.inFlight > 0
	snapshot := s.state.clone()
	s.mu.Unlock()
	s.publish(snapshot)
	return applied
}

func (s *Store) project(correlations []*model.Correlation) ([]*model.View, error) {
	result, err := projection.Project(correlations, s.resolver, s.policy)
	if err != nil {
		return nil, err
	}
	for _, gap := range result.Dropped {
		s.logger.Warn("dropped unresolved correlation",
			zap.String("uid", gap.CorrelationUID),
			zap.String("dataSourceUID", gap.DataSourceUID),
			zap.String("role", string(gap.Role)))
	}
	return result.Views, nil
}

// resync reloads after a successful mutation. A failure is kept in State and
// does not fail the mutation.
func (s *Store) resync(ctx context.Context) {
	if err := s.Reload(ctx); err != nil {
		s.logger.Warn("failed to reload correlations after mutation", zap.Error(err))
	}
}

func (s *Store) view(correlation *model.Correlation) (*model.View, error) {
	view, err := projection.One(correlation, s.resolver)
	if err != nil {
		return nil, fmt.Errorf("correlation %v was saved but could not be resolved: %w", correlation.UID, err)
	}
	return view, nil
}

func (s *Store) publish(state State) {
	if err := event.PublisherOf[State](s.events).Publish(context.Background(), event.NewEvent(&event.Context{
		Component: component,
		EventType: StateChanged,
		Sequence:  state.Sequence,
	}, state)); err != nil {
		s.logger.Warn("failed to publish state", zap.Error(err))
	}
}

// New creates an inactive store; call Activate to load the list.
func New(backend backend.Service, resolver registry.Resolver, options ...Option) *Store {
	ret := &Store{
		backend:  backend,
		resolver: resolver,
		policy:   projection.Strict,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop()
	}
	ret.logger = ret.logger.Named("store")
	if ret.events == nil {
		ret.events = event.New(event.WithLogger(ret.logger))
		ret.owned = true
	}
	ret.ctx, ret.cancel = context.WithCancel(context.Background())
	return ret
}
