package event

import (
	"time"

	"github.com/viant/memsim/internal/clock"
	"github.com/viant/memsim/internal/idgen"
)

// Context identifies the process an event relates to
type Context struct {
	ProcessID   int    `json:"processID"`
	ProcessName string `json:"processName"`
	EventType   string `json:"eventType"`
}

// Event wraps a typed payload
type Event[T any] struct {
	ID        string                 `json:"id"`
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		ID:        idgen.NewID(),
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
