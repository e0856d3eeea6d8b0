package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/viant/memsim/model/process"
	"github.com/viant/memsim/tracing"
)

// ErrUnknownProcess is returned when cancelling a process this runner is not executing.
var ErrUnknownProcess = errors.New("runner: process is not running")

// Completer receives the outcome of a process run
type Completer interface {
	// Release is called once the process ran for its full duration
	Release(ctx context.Context, p *process.Process) error

	// Interrupt is called when the process was cancelled before completion
	Interrupt(ctx context.Context, p *process.Process) error
}

// Config represents runner configuration
type Config struct {
	// TimeUnit is the wall-clock length of one simulated second
	TimeUnit time.Duration
}

// DefaultConfig returns the default runner configuration
func DefaultConfig() Config {
	return Config{TimeUnit: time.Second}
}

// Service runs one goroutine per admitted process
type Service struct {
	config    Config
	completer Completer
	parent    context.Context

	ctx      context.Context
	cancelFn context.CancelFunc
	mux      sync.Mutex
	active   map[int]*slot
	wg       sync.WaitGroup
}

// slot is a reserved run: cancellable from Reserve on, started by Launch
type slot struct {
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
}

// New creates a runner service
func New(options ...Option) *Service {
	s := &Service{
		config: DefaultConfig(),
		parent: context.Background(),
		active: make(map[int]*slot),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.config.TimeUnit <= 0 {
		s.config.TimeUnit = DefaultConfig().TimeUnit
	}
	s.ctx, s.cancelFn = context.WithCancel(s.parent)
	return s
}

// Bind sets the completer once it has been constructed with this runner as
// its launcher.
func (s *Service) Bind(completer Completer) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.completer = completer
}

// Reserve registers the process so that Cancel reaches it before Launch
// starts its goroutine. Reserving twice is a no-op.
func (s *Service) Reserve(p *process.Process) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.reserve(p.ID)
}

// reserve must be called with s.mux held
func (s *Service) reserve(id int) *slot {
	if ret, ok := s.active[id]; ok {
		return ret
	}
	ctx, cancel := context.WithCancel(s.ctx)
	ret := &slot{ctx: ctx, cancel: cancel}
	s.active[id] = ret
	s.wg.Add(1)
	return ret
}

// Launch starts the process in its own goroutine and returns immediately.
// A process that was not reserved is reserved first.
func (s *Service) Launch(p *process.Process) {
	s.mux.Lock()
	run := s.reserve(p.ID)
	if run.started {
		s.mux.Unlock()
		log.Printf("runner: %v already launched", p)
		return
	}
	run.started = true
	completer := s.completer
	s.mux.Unlock()
	go s.run(run.ctx, run.cancel, completer, p)
}

// Cancel interrupts a reserved or running process
func (s *Service) Cancel(id int) error {
	s.mux.Lock()
	run, ok := s.active[id]
	s.mux.Unlock()
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownProcess, id)
	}
	run.cancel()
	return nil
}

// Running returns the number of reserved or live process runs
func (s *Service) Running() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.active)
}

// Shutdown interrupts every running process and waits for all goroutines
func (s *Service) Shutdown() {
	s.cancelFn()
	s.wg.Wait()
}

func (s *Service) run(ctx context.Context, cancel context.CancelFunc, completer Completer, p *process.Process) {
	defer s.wg.Done()
	defer s.forget(p.ID)
	defer cancel()
	if completer == nil {
		log.Printf("runner: no completer bound, dropping %v", p)
		return
	}

	runCtx, span := tracing.StartSpan(ctx, "runner.run", "INTERNAL")
	span.WithInt("process.id", p.ID).WithAttributes(map[string]string{"process.name": p.Name})
	log.Printf("runner: executing %v - memory: %dMB", p, p.MemoryMB)

	timer := time.NewTimer(p.Duration(s.config.TimeUnit))
	defer timer.Stop()

	var err error
	select {
	case <-timer.C:
		err = completer.Release(runCtx, p)
	case <-ctx.Done():
		log.Printf("runner: process %v was interrupted", p)
		err = completer.Interrupt(context.WithoutCancel(runCtx), p)
	}
	if err != nil {
		log.Printf("runner: failed to finish %v: %v", p, err)
	}
	tracing.EndSpan(span, err)
}

func (s *Service) forget(id int) {
	s.mux.Lock()
	delete(s.active, id)
	s.mux.Unlock()
}
