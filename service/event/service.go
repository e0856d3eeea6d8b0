package event

import (
	"reflect"
	"sync"

	"github.com/viant/memsim/service/messaging/memory"
)

// Service keeps one queue, publisher and optional listener per payload type
type Service struct {
	typedPublishers   map[reflect.Type]any
	typedListeners    map[reflect.Type]stopper
	queues            []closer
	mux               sync.RWMutex
	memNewQueueConfig func(name string) memory.Config
}

type stopper interface {
	Stop()
	Wait()
}

type closer interface{ Close() }

func New(opts ...Option) *Service {
	ret := &Service{
		typedPublishers: make(map[reflect.Type]any),
		typedListeners:  make(map[reflect.Type]stopper),
		memNewQueueConfig: func(string) memory.Config {
			return memory.DefaultConfig()
		},
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func keyOf[T any]() reflect.Type {
	var t T
	rType := reflect.TypeOf(t)
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	return rType
}

// PublisherOf returns the publisher for the provided type, creating its queue on first use
func PublisherOf[T any](s *Service) *Publisher[T] {
	key := keyOf[T]()
	s.mux.Lock()
	defer s.mux.Unlock()
	if ret, ok := s.typedPublishers[key]; ok {
		return ret.(*Publisher[T])
	}
	queue := memory.NewQueue[Event[T]](s.memNewQueueConfig(key.String()))
	s.queues = append(s.queues, queue)
	publisher := NewPublisher[T](queue)
	s.typedPublishers[key] = publisher
	return publisher
}

// SetListenerOf replaces the listener for the provided type
func SetListenerOf[T any](s *Service, handler func(*Event[T])) {
	key := keyOf[T]()
	publisher := PublisherOf[T](s)
	s.mux.Lock()
	previous := s.typedListeners[key]
	listener := NewListener[T](publisher, handler)
	s.typedListeners[key] = listener
	s.mux.Unlock()
	if previous != nil {
		previous.Stop()
	}
	listener.Start()
}

// Shutdown closes every queue and waits for listeners to drain what was
// already published.
func (s *Service) Shutdown() {
	s.mux.Lock()
	queues := s.queues
	listeners := s.typedListeners
	s.queues = nil
	s.typedListeners = make(map[reflect.Type]stopper)
	s.mux.Unlock()
	for _, queue := range queues {
		queue.Close()
	}
	for _, listener := range listeners {
		listener.Wait()
	}
}
