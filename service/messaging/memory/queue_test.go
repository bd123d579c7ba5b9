package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID    string
	Count int
}

// assertEmpty checks that nothing arrives within a short window.
func assertEmpty(t *testing.T, queue *Queue[payload]) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueue(t *testing.T) {
	queue := NewQueue[payload](DefaultConfig())
	ctx := context.Background()

	require.NoError(t, queue.Publish(ctx, &payload{ID: "1", Count: 1}))
	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, &payload{ID: "1", Count: 1}, message.T())
	assertEmpty(t, queue)

	assert.NoError(t, message.Ack())
	assert.ErrorIs(t, message.Ack(), ErrProcessed)
	assert.ErrorIs(t, message.Nack(errors.New("late")), ErrProcessed)
}

func TestQueue_Nack(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = time.Millisecond
	config.MaxRetries = 1
	queue := NewQueue[payload](config)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, queue.Publish(ctx, &payload{ID: "1"}))
	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	require.NoError(t, message.Nack(errors.New("failed")))

	retried, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", retried.T().ID)
	require.NoError(t, retried.Nack(errors.New("failed again")))
	assertEmpty(t, queue)
}

func TestQueue_DropOldest(t *testing.T) {
	queue := NewQueue[payload](Config{QueueBuffer: 2, DropOldest: true})
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		require.NoError(t, queue.Publish(ctx, &payload{Count: i}))
	}

	for _, expect := range []int{2, 3} {
		message, err := queue.Consume(ctx)
		require.NoError(t, err)
		assert.Equal(t, expect, message.T().Count)
	}
	assertEmpty(t, queue)
}

func TestQueue_ConsumeCancelled(t *testing.T) {
	queue := NewQueue[payload](DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, queue.Publish(ctx, &payload{}), context.Canceled)
}
