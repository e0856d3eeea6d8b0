// Package pool owns the memory budget shared by all simulated processes.
// Every admission decision, every release and the FIFO drain of the waiting
// queue happen under a single mutex so that two completing processes can
// never admit the same waiting process twice. Starting an admitted process is
// delegated to a Launcher and always happens after the mutex is released.
package pool
