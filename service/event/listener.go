package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/correlations/service/messaging"
	"go.uber.org/zap"
)

// Listener consumes events from a publisher on its own goroutine and hands
// them to handler one at a time. An event whose handler panics is nacked and
// redelivered per the queue retry settings.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	logger    *zap.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewListener[T any](publisher *Publisher[T], handler func(*Event[T]), logger *zap.Logger) *Listener[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// Stop terminates the consuming goroutine and waits for it to exit.
func (l *Listener[T]) Stop() {
	l.cancel()
	<-l.done
}

func (l *Listener[T]) Start() {
	go func() {
		defer close(l.done)
		for {
			msg, err := l.publisher.queue.Consume(l.ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				l.logger.Warn("failed to consume event", zap.Error(err))
				continue
			}
			if msg == nil {
				continue
			}
			if err = l.handle(msg); err != nil {
				l.logger.Warn("event handler failed", zap.Error(err))
				_ = msg.Nack(err)
				continue
			}
			_ = msg.Ack()
		}
	}()
}

func (l *Listener[T]) handle(msg messaging.Message[Event[T]]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	l.handler(msg.T())
	return nil
}
