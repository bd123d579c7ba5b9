package event

import (
	"time"

	"github.com/viant/correlations/internal/clock"
)

// Context describes where an event originated.
type Context struct {
	Component string `json:"component"`
	EventType string `json:"eventType"`
	Sequence  uint64 `json:"sequence,omitempty"`
}

// Event wraps a typed payload.
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
