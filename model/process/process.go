package process

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/viant/memsim/internal/clock"
)

// ErrInvalidTransition is returned when a state change is not allowed by the
// process lifecycle.
var ErrInvalidTransition = errors.New("process: invalid state transition")

// Process represents a simulated process competing for pool memory
type Process struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	MemoryMB    int        `json:"memoryMB"`
	DurationSec int        `json:"durationSec"`
	State       State      `json:"state"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
	mu          sync.RWMutex
}

// New creates a process in the submitted state. An empty name is replaced
// with "Process-<id>".
func New(id int, name string, memoryMB, durationSec int) *Process {
	if name == "" {
		name = "Process-" + strconv.Itoa(id)
	}
	return &Process{
		ID:          id,
		Name:        name,
		MemoryMB:    memoryMB,
		DurationSec: durationSec,
		State:       StateSubmitted,
		CreatedAt:   clock.Now(),
	}
}

// GetState returns the process state
func (p *Process) GetState() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.State
}

// Transition moves the process to next, stamping start and finish times.
func (p *Process) Transition(next State) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.State.CanTransition(next) {
		return fmt.Errorf("%w: %v %s -> %s", ErrInvalidTransition, p.ID, p.State, next)
	}
	now := clock.Now()
	switch {
	case next == StateRunning:
		p.StartedAt = &now
	case next.IsTerminal():
		p.FinishedAt = &now
	}
	p.State = next
	return nil
}

// Duration returns the simulated run time expressed in unit steps, capped at
// the largest representable duration.
func (p *Process) Duration(unit time.Duration) time.Duration {
	if p.DurationSec <= 0 || unit <= 0 {
		return 0
	}
	if int64(p.DurationSec) > math.MaxInt64/int64(unit) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(p.DurationSec) * unit
}

// Clone returns a detached copy safe to hand to other goroutines
func (p *Process) Clone() *Process {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &Process{
		ID:          p.ID,
		Name:        p.Name,
		MemoryMB:    p.MemoryMB,
		DurationSec: p.DurationSec,
		State:       p.State,
		CreatedAt:   p.CreatedAt,
		StartedAt:   p.StartedAt,
		FinishedAt:  p.FinishedAt,
	}
}

func (p *Process) String() string {
	return fmt.Sprintf("%s (PID: %d)", p.Name, p.ID)
}
