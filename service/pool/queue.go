package pool

import "github.com/viant/memsim/model/process"

// WaitQueue keeps processes that did not fit at submission time in arrival
// order. It is not safe for concurrent use; the owning Pool serialises access.
type WaitQueue struct {
	items []*process.Process
}

// NewWaitQueue creates an empty queue
func NewWaitQueue() *WaitQueue {
	return &WaitQueue{}
}

// Push appends a process to the tail
func (q *WaitQueue) Push(p *process.Process) {
	q.items = append(q.items, p)
}

// Len returns the number of queued processes
func (q *WaitQueue) Len() int {
	return len(q.items)
}

// IDs returns queued process IDs head first
func (q *WaitQueue) IDs() []int {
	ret := make([]int, len(q.items))
	for i, item := range q.items {
		ret[i] = item.ID
	}
	return ret
}

// Remove takes the process with the given id out of the queue, keeping the
// order of the rest. It returns nil when id is not queued.
func (q *WaitQueue) Remove(id int) *process.Process {
	for i, item := range q.items {
		if item.ID != id {
			continue
		}
		q.items = append(q.items[:i], q.items[i+1:]...)
		return item
	}
	return nil
}

// Drain scans the queue once, head to tail. Every process accepted by fit is
// removed and returned in scan order; rejected ones keep their relative
// order. A rejection does not stop the scan.
func (q *WaitQueue) Drain(fit func(p *process.Process) bool) []*process.Process {
	if len(q.items) == 0 {
		return nil
	}
	pending := q.items
	var admitted []*process.Process
	kept := make([]*process.Process, 0, len(pending))
	for _, candidate := range pending {
		if fit(candidate) {
			admitted = append(admitted, candidate)
			continue
		}
		kept = append(kept, candidate)
	}
	q.items = kept
	return admitted
}
