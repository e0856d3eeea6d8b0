package event

import (
	"context"
	"errors"
	"log"

	"github.com/viant/memsim/service/messaging"
)

// Listener feeds every consumed event to handler on its own goroutine
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// Stop cancels consumption and waits for the listener goroutine to exit
func (l *Listener[T]) Stop() {
	l.cancel()
	<-l.done
}

// Wait blocks until the listener goroutine exits
func (l *Listener[T]) Wait() {
	<-l.done
}

func (l *Listener[T]) Start() {
	go func() {
		defer close(l.done)
		for {
			event, err := l.publisher.Consume(l.ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, messaging.ErrClosed) {
					return
				}
				log.Printf("event: failed to consume: %v", err)
				continue
			}
			if event != nil {
				l.handler(event)
			}
		}
	}()
}
