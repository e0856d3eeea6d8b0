package memsim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/viant/memsim/internal/host"
	"github.com/viant/memsim/internal/idgen"
	"github.com/viant/memsim/model/process"
	"github.com/viant/memsim/progress"
	"github.com/viant/memsim/service/dao"
	pmemory "github.com/viant/memsim/service/dao/process/memory"
	"github.com/viant/memsim/service/event"
	"github.com/viant/memsim/service/messaging"
	mmemory "github.com/viant/memsim/service/messaging/memory"
	"github.com/viant/memsim/service/pool"
	"github.com/viant/memsim/service/runner"
	"github.com/viant/memsim/tracing"
)

// Version is reported with tracing spans
const Version = "0.1.0"

// Stats combines the pool snapshot with cumulative lifecycle counters
type Stats struct {
	Snapshot pool.Snapshot     `json:"snapshot"`
	Progress progress.Counters `json:"progress"`
	// Goroutines is the number of live process runs
	Goroutines int `json:"goroutines"`
}

// Service is the simulator facade
type Service struct {
	config    *Config
	ctx       context.Context
	output    io.Writer
	timeUnit  time.Duration
	observers []pool.Observer

	pool      *pool.Pool
	runner    *runner.Service
	events    *event.Service
	publisher *event.Publisher[pool.Notice]
	processes dao.Service[int, process.Process]
	progress  *progress.Progress
	sequence  idgen.Sequence
	closed    atomic.Bool
}

// New creates a simulator service
func New(options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig(), ctx: context.Background()}
	for _, option := range options {
		option(ret)
	}
	if err := ret.init(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) init() error {
	cfg := s.config
	if err := cfg.Validate(); err != nil {
		return err
	}
	capacity := cfg.Pool.CapacityMB
	if cfg.Pool.HostFraction > 0 {
		var err error
		if capacity, err = host.CapacityMB(s.ctx, cfg.Pool.HostFraction); err != nil {
			return fmt.Errorf("failed to size pool from host memory: %w", err)
		}
	}
	if cfg.Tracing.Enabled {
		if err := tracing.Init(cfg.Tracing.ServiceName, Version, cfg.Tracing.OutputFile); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	s.timeUnit, _ = cfg.TimeUnit()
	if s.processes == nil {
		s.processes = pmemory.New()
	}
	s.progress = progress.New(nil)
	s.events = event.New(event.WithNewMemoryQueueConfig(func(string) mmemory.Config {
		queueConfig := mmemory.DefaultConfig()
		queueConfig.QueueBuffer = cfg.Events.Buffer
		return queueConfig
	}))
	// notices are only queued when something consumes them
	if cfg.Events.Enabled && s.output != nil {
		s.publisher = event.PublisherOf[pool.Notice](s.events)
		event.SetListenerOf[pool.Notice](s.events, s.render)
	}
	s.runner = runner.New(runner.WithTimeUnit(s.timeUnit), runner.WithContext(s.ctx))
	var err error
	s.pool, err = pool.New(
		pool.WithConfig(pool.Config{
			CapacityMB:         capacity,
			RejectOversized:    cfg.Pool.RejectOversized,
			ReleaseOnInterrupt: cfg.Pool.ReleaseOnInterrupt,
		}),
		pool.WithLauncher(s.runner),
		pool.WithObserver(s.observe),
		pool.WithObserver(s.observers...),
	)
	if err != nil {
		return err
	}
	s.runner.Bind(s.pool)
	return nil
}

// Submit creates a process and hands it to the pool. It returns the assigned
// PID as soon as the process is admitted or queued, never waiting for it to
// complete. A rejected oversized request still gets a PID.
func (s *Service) Submit(ctx context.Context, name string, memoryMB, durationSec int) (int, error) {
	if s.closed.Load() {
		return 0, ErrShutdown
	}
	if memoryMB <= 0 {
		return 0, fmt.Errorf("%w: requested %d MB", pool.ErrInvalidMemory, memoryMB)
	}
	if durationSec < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationSec)
	}
	if limit := math.MaxInt64 / int64(s.timeUnit); int64(durationSec) > limit {
		return 0, fmt.Errorf("%w: %d exceeds %d time units of %v", ErrInvalidDuration, durationSec, limit, s.timeUnit)
	}
	proc := process.New(s.sequence.Next(), name, memoryMB, durationSec)
	if err := s.processes.Save(ctx, proc); err != nil {
		return 0, err
	}
	s.progress.Update(progress.Delta{Submitted: 1})
	if _, err := s.pool.Submit(ctx, proc); err != nil {
		return proc.ID, err
	}
	return proc.ID, nil
}

// Snapshot returns the current memory state
func (s *Service) Snapshot() pool.Snapshot {
	return s.pool.Snapshot()
}

// Cancel withdraws a waiting process or interrupts a running one. Running
// processes are interrupted asynchronously by their runner goroutine.
func (s *Service) Cancel(ctx context.Context, id int) error {
	proc, err := s.processes.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to cancel %d: %w", id, err)
	}
	if state := proc.GetState(); state.IsTerminal() {
		return fmt.Errorf("%w: %v is %s", ErrNotCancellable, proc, state)
	}
	_, err = s.pool.Withdraw(ctx, id)
	if err == nil || !errors.Is(err, pool.ErrNotWaiting) {
		return err
	}
	if err = s.runner.Cancel(id); err != nil {
		return fmt.Errorf("%w: %v", ErrNotCancellable, err)
	}
	return nil
}

// Process returns a copy of the process with the supplied PID
func (s *Service) Process(ctx context.Context, id int) (*process.Process, error) {
	proc, err := s.processes.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return proc.Clone(), nil
}

// Processes returns copies of the processes in any of states (all when none
// is given), ordered by PID.
func (s *Service) Processes(ctx context.Context, states ...process.State) ([]*process.Process, error) {
	var parameters []*dao.Parameter
	if len(states) > 0 {
		names := make([]string, 0, len(states))
		for _, state := range states {
			names = append(names, string(state))
		}
		parameters = append(parameters, dao.NewParameter("State", names...))
	}
	list, err := s.processes.List(ctx, parameters...)
	if err != nil {
		return nil, err
	}
	ret := make([]*process.Process, 0, len(list))
	for _, proc := range list {
		ret = append(ret, proc.Clone())
	}
	return ret, nil
}

// Stats returns the snapshot together with cumulative counters
func (s *Service) Stats() Stats {
	return Stats{
		Snapshot:   s.pool.Snapshot(),
		Progress:   s.progress.Snapshot(),
		Goroutines: s.runner.Running(),
	}
}

// Shutdown interrupts every running process, waits for the runs to finish
// and flushes pending notices to the output.
func (s *Service) Shutdown(ctx context.Context) error {
	s.closed.Store(true)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.runner.Shutdown()
		s.events.Shutdown()
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) observe(notice *pool.Notice) {
	switch notice.Kind {
	case pool.NoticeAdmitted:
		s.progress.Update(progress.Delta{Admitted: 1})
	case pool.NoticeQueued:
		s.progress.Update(progress.Delta{Queued: 1})
	case pool.NoticeRejected:
		s.progress.Update(progress.Delta{Rejected: 1})
	case pool.NoticeCompleted:
		s.progress.Update(progress.Delta{Completed: 1})
	case pool.NoticeInterrupted, pool.NoticeWithdrawn:
		s.progress.Update(progress.Delta{Interrupted: 1})
	}
	if s.publisher == nil {
		return
	}
	proc := notice.Process
	evt := event.NewEvent(&event.Context{ProcessID: proc.ID, ProcessName: proc.Name, EventType: string(notice.Kind)}, *notice)
	if err := s.publisher.Publish(context.Background(), evt); err != nil && !errors.Is(err, messaging.ErrClosed) {
		log.Printf("memsim: failed to publish %v notice for %v: %v", notice.Kind, proc, err)
	}
}

func (s *Service) render(evt *event.Event[pool.Notice]) {
	notice := evt.Data
	proc := notice.Process
	var line string
	switch notice.Kind {
	case pool.NoticeAdmitted:
		line = fmt.Sprintf("Executing %v - memory: %dMB", proc, proc.MemoryMB)
	case pool.NoticeQueued:
		line = fmt.Sprintf("Not enough memory. %v was queued", proc)
	case pool.NoticeRejected:
		line = fmt.Sprintf("%v requires %dMB, more than the pool capacity, rejected", proc, proc.MemoryMB)
	case pool.NoticeCompleted:
		line = fmt.Sprintf("Process finished: %v", proc)
	case pool.NoticeInterrupted:
		line = fmt.Sprintf("Process %v was interrupted", proc)
	case pool.NoticeWithdrawn:
		line = fmt.Sprintf("Process %v was withdrawn from the queue", proc)
	default:
		line = fmt.Sprintf("%v: %v", notice.Kind, proc)
	}
	if _, err := fmt.Fprintf(s.output, "%s [%v]\n", line, notice.Snapshot); err != nil {
		log.Printf("memsim: failed to write notice: %v", err)
	}
}
