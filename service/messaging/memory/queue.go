package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/memsim/internal/idgen"
	"github.com/viant/memsim/service/messaging"
)

// Config for memory queue implementation
type Config struct {
	// MaxRetries is how many times a nacked message is redelivered
	MaxRetries int
	// QueueBuffer is the channel capacity; Publish blocks when it is full
	QueueBuffer int
}

// DefaultConfig returns a standard configuration for memory queue
func DefaultConfig() Config {
	return Config{
		MaxRetries:  1,
		QueueBuffer: 100,
	}
}

// Message is a message delivered by the in-memory queue
type Message[T any] struct {
	id         string
	payload    T
	queue      *Queue[T]
	retryCount int
	createdAt  time.Time
	mu         sync.Mutex
	processed  bool
}

// ID returns the message identifier
func (m *Message[T]) ID() string {
	return m.id
}

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message as processed successfully
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return fmt.Errorf("message %v already processed", m.id)
	}
	m.processed = true
	return nil
}

// Nack redelivers the message while retries remain; afterwards it is dropped
// and counted.
func (m *Message[T]) Nack(_ error) error {
	m.mu.Lock()
	if m.processed {
		m.mu.Unlock()
		return fmt.Errorf("message %v already processed", m.id)
	}
	m.processed = true
	retries := m.retryCount + 1
	m.mu.Unlock()

	if retries > m.queue.config.MaxRetries {
		m.queue.dropped.Add(1)
		return nil
	}
	return m.queue.enqueue(context.Background(), &Message[T]{
		id:         m.id,
		payload:    m.payload,
		queue:      m.queue,
		retryCount: retries,
		createdAt:  time.Now(),
	})
}

// Queue implements an in-memory messaging.Queue on a buffered channel
type Queue[T any] struct {
	messages chan *Message[T]
	config   Config
	closed   chan struct{}
	once     sync.Once
	dropped  atomic.Int64
}

// NewQueue creates a new in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		messages: make(chan *Message[T], config.QueueBuffer),
		config:   config,
		closed:   make(chan struct{}),
	}
}

// Publish adds a new item to the queue
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	return q.enqueue(ctx, &Message[T]{
		id:        idgen.NewID(),
		payload:   *t,
		queue:     q,
		createdAt: time.Now(),
	})
}

func (q *Queue[T]) enqueue(ctx context.Context, msg *Message[T]) error {
	select {
	case <-q.closed:
		return messaging.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case q.messages <- msg:
		return nil
	case <-q.closed:
		return messaging.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume retrieves a single item from the queue. Messages still buffered
// when the queue is closed are delivered before ErrClosed.
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	default:
	}
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-q.closed:
		return nil, messaging.ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting messages
func (q *Queue[T]) Close() {
	q.once.Do(func() { close(q.closed) })
}

// Size returns the current number of messages in the queue
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// Dropped returns the number of messages discarded after exhausting retries
func (q *Queue[T]) Dropped() int {
	return int(q.dropped.Load())
}

var _ messaging.Queue[any] = (*Queue[any])(nil)
