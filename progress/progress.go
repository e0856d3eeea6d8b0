package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/memsim/internal/clock"
)

// Delta represents an incremental counter change emitted by the pool.
type Delta struct {
	Submitted   int
	Admitted    int
	Queued      int
	Completed   int
	Interrupted int
	Rejected    int
}

// Counters is a read-only copy of the tracked lifecycle counters.
type Counters struct {
	StartedAt time.Time

	Submitted   int
	Admitted    int
	Queued      int
	Completed   int
	Interrupted int
	Rejected    int
}

// Active returns the number of accepted processes that have not finished yet.
func (c Counters) Active() int {
	return c.Submitted - c.Rejected - c.Completed - c.Interrupted
}

// Progress keeps aggregated lifecycle counters. It is safe for concurrent use.
type Progress struct {
	mux      sync.Mutex
	counters Counters
	onChange func(Counters)
}

// Update applies the supplied delta. The onChange callback, if any, runs
// outside the critical section with a copy of the updated counters.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.counters.Submitted += d.Submitted
	p.counters.Admitted += d.Admitted
	p.counters.Queued += d.Queued
	p.counters.Completed += d.Completed
	p.counters.Interrupted += d.Interrupted
	p.counters.Rejected += d.Rejected
	snapshot := p.counters
	cb := p.onChange
	p.mux.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters.
func (p *Progress) Snapshot() Counters {
	if p == nil {
		return Counters{}
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.counters
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables it; only one callback is active.
func (p *Progress) OnChange(cb func(Counters)) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.onChange = cb
	p.mux.Unlock()
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// New creates a tracker stamped with the current time.
func New(onChange func(Counters)) *Progress {
	return &Progress{counters: Counters{StartedAt: clock.Now()}, onChange: onChange}
}

// WithTracker embeds tracker in a derived context.
func WithTracker(ctx context.Context, tracker *Progress) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, trackerKey, tracker)
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies d to the tracker carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
