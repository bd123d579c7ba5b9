package event

import (
	"reflect"
	"sync"

	"github.com/viant/correlations/service/messaging"
	"github.com/viant/correlations/service/messaging/memory"
	"go.uber.org/zap"
)

// Service hands out one publisher per payload type, all backed by in-memory
// queues, plus an untyped stream receiving a copy of every event.
type Service struct {
	publisher       *Publisher[any]
	listener        *Listener[any]
	typedPublishers map[reflect.Type]any
	typedListener   map[reflect.Type]any
	mux             sync.RWMutex
	newQueueConfig  func(name string) memory.Config
	logger          *zap.Logger
}

// SetListener replaces the listener of the untyped stream.
func (s *Service) SetListener(handler func(*Event[any])) {
	s.mux.Lock()
	previous := s.listener
	s.listener = NewListener[any](s.publisher, handler, s.logger)
	s.listener.Start()
	s.mux.Unlock()
	if previous != nil {
		previous.Stop()
	}
}

// Close stops every listener.
func (s *Service) Close() {
	s.mux.Lock()
	listeners := make([]interface{ Stop() }, 0, len(s.typedListener)+1)
	if s.listener != nil {
		listeners = append(listeners, s.listener)
		s.listener = nil
	}
	for key, listener := range s.typedListener {
		listeners = append(listeners, listener.(interface{ Stop() }))
		delete(s.typedListener, key)
	}
	s.mux.Unlock()
	for _, listener := range listeners {
		listener.Stop()
	}
}

func New(opts ...Option) *Service {
	ret := &Service{
		typedPublishers: make(map[reflect.Type]any),
		typedListener:   make(map[reflect.Type]any),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.newQueueConfig == nil {
		ret.newQueueConfig = func(string) memory.Config {
			config := memory.DefaultConfig()
			config.DropOldest = true
			return config
		}
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop()
	}
	ret.publisher = NewPublisher[any](QueueOf[Event[any]](ret, "any"))
	return ret
}

func QueueOf[T any](s *Service, name string) messaging.Queue[T] {
	return memory.NewQueue[T](s.newQueueConfig(name))
}

func keyOf[T any]() reflect.Type {
	rType := reflect.TypeOf((*T)(nil)).Elem()
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	return rType
}

// SetListenerOf replaces the listener for events carrying T.
func SetListenerOf[T any](s *Service, handler func(*Event[T])) {
	key := keyOf[T]()
	publisher := PublisherOf[T](s)
	listener := NewListener[T](publisher, handler, s.logger)
	s.mux.Lock()
	previous, ok := s.typedListener[key]
	s.typedListener[key] = listener
	listener.Start()
	s.mux.Unlock()
	if ok {
		previous.(*Listener[T]).Stop()
	}
}

// PublisherOf returns the publisher for T, creating it on first use.
func PublisherOf[T any](s *Service) *Publisher[T] {
	key := keyOf[T]()
	s.mux.RLock()
	ret, ok := s.typedPublishers[key]
	s.mux.RUnlock()
	if ok {
		return ret.(*Publisher[T])
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if ret, ok = s.typedPublishers[key]; ok {
		return ret.(*Publisher[T])
	}
	publisher := NewPublisher[T](QueueOf[Event[T]](s, key.String()))
	publisher.anyQueue = s.publisher.queue
	s.typedPublishers[key] = publisher
	return publisher
}
