// Package runner executes admitted processes. Every process gets its own
// goroutine that sleeps for the process duration and then reports back to a
// Completer exactly once: Release on natural completion, Interrupt when the
// process is cancelled first.
package runner
