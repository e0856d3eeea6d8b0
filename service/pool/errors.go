package pool

import "errors"

var (
	// ErrInvalidMemory is returned when a process requests no memory.
	ErrInvalidMemory = errors.New("pool: memory requirement must be positive")

	// ErrOversizedRequest is returned when a process requests more memory
	// than the pool will ever have.
	ErrOversizedRequest = errors.New("pool: memory requirement exceeds total capacity")

	// ErrNotRunning is returned when releasing or interrupting a process
	// that the pool does not hold as running.
	ErrNotRunning = errors.New("pool: process is not running")

	// ErrNotWaiting is returned when withdrawing a process that is not queued.
	ErrNotWaiting = errors.New("pool: process is not waiting")

	// ErrNilProcess is returned when a nil process is passed in.
	ErrNilProcess = errors.New("pool: nil process")
)
