package idgen

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// NewFunc returns a new globally unique identifier as string. It is a
// variable so tests can stub it.
var NewFunc = func() string { return uuid.New().String() }

// NewID returns an opaque unique identifier.
func NewID() string { return NewFunc() }

// Sequence issues positive, strictly increasing integers starting at 1.
// Issued values are never reused.
type Sequence struct {
	last atomic.Int64
}

// Next returns the next value of the sequence
func (s *Sequence) Next() int {
	return int(s.last.Add(1))
}

// Last returns the most recently issued value or 0
func (s *Sequence) Last() int {
	return int(s.last.Load())
}
