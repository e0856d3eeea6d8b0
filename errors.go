package memsim

import "errors"

var (
	// ErrInvalidDuration is returned when a process declares a negative duration.
	ErrInvalidDuration = errors.New("memsim: duration must be >= 0")

	// ErrNotCancellable is returned when cancelling a process that already finished.
	ErrNotCancellable = errors.New("memsim: process is neither running nor waiting")

	// ErrShutdown is returned by Submit once the service has been shut down.
	ErrShutdown = errors.New("memsim: service is shut down")
)
