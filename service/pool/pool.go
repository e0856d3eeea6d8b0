package pool

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/viant/memsim/model/process"
	"github.com/viant/memsim/tracing"
)

// Config represents memory pool configuration
type Config struct {
	// CapacityMB is the fixed total memory of the pool
	CapacityMB int

	// RejectOversized refuses requests larger than CapacityMB instead of
	// queueing them forever
	RejectOversized bool

	// ReleaseOnInterrupt returns the memory of an interrupted process and
	// drains the queue, exactly like a normal completion
	ReleaseOnInterrupt bool
}

// DefaultConfig returns the default pool configuration
func DefaultConfig() Config {
	return Config{
		CapacityMB:         1024,
		RejectOversized:    true,
		ReleaseOnInterrupt: true,
	}
}

// Launcher starts execution of an admitted process. Reserve is called with
// the pool lock held, right after admission, so the process is cancellable
// before its run starts; it must not block or call back into the pool.
// Launch follows once the lock is released and must not block for the
// process lifetime.
type Launcher interface {
	Reserve(p *process.Process)
	Launch(p *process.Process)
}

// Pool tracks available memory, running processes and the waiting queue
type Pool struct {
	config    Config
	launcher  Launcher
	observers []Observer

	mux       sync.Mutex
	available int
	running   map[int]*process.Process
	leaked    map[int]*process.Process
	waiting   *WaitQueue
}

// New creates a memory pool
func New(options ...Option) (*Pool, error) {
	p := &Pool{
		config:  DefaultConfig(),
		running: make(map[int]*process.Process),
		leaked:  make(map[int]*process.Process),
		waiting: NewWaitQueue(),
	}
	for _, opt := range options {
		opt(p)
	}
	if p.config.CapacityMB <= 0 {
		return nil, fmt.Errorf("capacity must be > 0, got %d", p.config.CapacityMB)
	}
	if p.launcher == nil {
		return nil, fmt.Errorf("launcher is required")
	}
	p.available = p.config.CapacityMB
	return p, nil
}

// Submit decides between immediate admission and queueing. An admitted
// process is launched before Submit returns; Submit never waits for it to
// complete.
func (p *Pool) Submit(ctx context.Context, proc *process.Process) (decision Decision, err error) {
	_, span := tracing.StartSpan(ctx, "pool.Submit", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	if proc == nil {
		return "", ErrNilProcess
	}
	span.WithInt("process.id", proc.ID).WithInt("process.memoryMB", proc.MemoryMB)
	if proc.MemoryMB <= 0 {
		return "", fmt.Errorf("%w: %v requested %d MB", ErrInvalidMemory, proc, proc.MemoryMB)
	}

	p.mux.Lock()
	var admitted []*process.Process
	var kind NoticeKind
	switch {
	case proc.MemoryMB > p.config.CapacityMB && p.config.RejectOversized:
		if err = proc.Transition(process.StateRejected); err != nil {
			p.mux.Unlock()
			return "", err
		}
		decision, kind = DecisionRejected, NoticeRejected
		err = fmt.Errorf("%w: %v requested %d MB of %d MB", ErrOversizedRequest, proc, proc.MemoryMB, p.config.CapacityMB)
	case p.available >= proc.MemoryMB:
		if err = p.admit(proc); err != nil {
			p.mux.Unlock()
			return "", err
		}
		admitted = append(admitted, proc)
		decision, kind = DecisionAdmitted, NoticeAdmitted
	default:
		if err = proc.Transition(process.StateWaiting); err != nil {
			p.mux.Unlock()
			return "", err
		}
		p.waiting.Push(proc)
		decision, kind = DecisionQueued, NoticeQueued
	}
	notices := []*Notice{p.notice(kind, proc)}
	p.mux.Unlock()

	span.WithAttributes(map[string]string{"decision": string(decision)})
	p.dispatch(notices, admitted)
	return decision, err
}

// Release returns the memory of a completed process, then admits every
// waiting process that fits in a single head-to-tail pass.
func (p *Pool) Release(ctx context.Context, proc *process.Process) (err error) {
	_, span := tracing.StartSpan(ctx, "pool.Release", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	if proc == nil {
		return ErrNilProcess
	}
	span.WithInt("process.id", proc.ID)
	return p.finish(proc, process.StateCompleted, NoticeCompleted, true)
}

// Interrupt handles a running process cancelled before completion. Its memory
// is returned only when the pool is configured with ReleaseOnInterrupt;
// otherwise it stays deducted and is reported as leaked.
func (p *Pool) Interrupt(ctx context.Context, proc *process.Process) (err error) {
	_, span := tracing.StartSpan(ctx, "pool.Interrupt", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	if proc == nil {
		return ErrNilProcess
	}
	span.WithInt("process.id", proc.ID)
	return p.finish(proc, process.StateInterrupted, NoticeInterrupted, p.config.ReleaseOnInterrupt)
}

// Withdraw removes a waiting process from the queue and marks it interrupted
func (p *Pool) Withdraw(ctx context.Context, id int) (*process.Process, error) {
	p.mux.Lock()
	proc := p.waiting.Remove(id)
	if proc == nil {
		p.mux.Unlock()
		return nil, fmt.Errorf("%w: %d", ErrNotWaiting, id)
	}
	if err := proc.Transition(process.StateInterrupted); err != nil {
		p.waiting.Push(proc)
		p.mux.Unlock()
		return nil, err
	}
	notices := []*Notice{p.notice(NoticeWithdrawn, proc)}
	p.mux.Unlock()
	p.dispatch(notices, nil)
	return proc, nil
}

// Snapshot returns a consistent view of the pool
func (p *Pool) Snapshot() Snapshot {
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.snapshot()
}

// WaitingIDs returns IDs of queued processes head first
func (p *Pool) WaitingIDs() []int {
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.waiting.IDs()
}

// Capacity returns the total pool capacity in MB
func (p *Pool) Capacity() int {
	return p.config.CapacityMB
}

func (p *Pool) finish(proc *process.Process, state process.State, kind NoticeKind, release bool) error {
	p.mux.Lock()
	if held, ok := p.running[proc.ID]; !ok || held != proc {
		p.mux.Unlock()
		return fmt.Errorf("%w: %v", ErrNotRunning, proc)
	}
	if err := proc.Transition(state); err != nil {
		p.mux.Unlock()
		return err
	}
	delete(p.running, proc.ID)
	if release {
		p.available += proc.MemoryMB
	} else {
		p.leaked[proc.ID] = proc
	}
	notices := []*Notice{p.notice(kind, proc)}
	var admitted []*process.Process
	if release {
		admitted = p.drain()
		for _, candidate := range admitted {
			notices = append(notices, p.notice(NoticeAdmitted, candidate))
		}
	}
	p.mux.Unlock()
	p.dispatch(notices, admitted)
	return nil
}

// admit deducts memory and marks proc running. Must be called with p.mux held.
func (p *Pool) admit(proc *process.Process) error {
	if err := proc.Transition(process.StateRunning); err != nil {
		return err
	}
	p.available -= proc.MemoryMB
	p.running[proc.ID] = proc
	p.launcher.Reserve(proc)
	return nil
}

// drain runs one pass over the waiting queue. Must be called with p.mux held.
func (p *Pool) drain() []*process.Process {
	return p.waiting.Drain(func(candidate *process.Process) bool {
		if p.available < candidate.MemoryMB {
			return false
		}
		if err := p.admit(candidate); err != nil {
			log.Printf("pool: failed to admit %v: %v", candidate, err)
			return false
		}
		return true
	})
}

// snapshot must be called with p.mux held
func (p *Pool) snapshot() Snapshot {
	ret := Snapshot{
		TotalMB:     p.config.CapacityMB,
		AvailableMB: p.available,
		Running:     len(p.running),
		Waiting:     p.waiting.Len(),
	}
	for _, proc := range p.leaked {
		ret.LeakedMB += proc.MemoryMB
	}
	return ret
}

func (p *Pool) notice(kind NoticeKind, proc *process.Process) *Notice {
	return &Notice{Kind: kind, Process: proc.Clone(), Snapshot: p.snapshot()}
}

// dispatch notifies observers and launches admitted processes; it runs
// without the pool lock.
func (p *Pool) dispatch(notices []*Notice, admitted []*process.Process) {
	for _, notice := range notices {
		for _, observer := range p.observers {
			observer(notice)
		}
	}
	for _, proc := range admitted {
		p.launcher.Launch(proc)
	}
}
