// Package memsim simulates admission of concurrently running processes
// against a fixed memory budget.
//
// A process declares the memory it needs (MB) and how long it runs
// (seconds). It is admitted immediately when the pool has enough free memory,
// otherwise it waits in a FIFO queue. Every completion returns memory to the
// pool and admits, in one pass over the queue, each waiting process that now
// fits.
//
// End-users interact with the simulator via the Service facade:
//
//	srv, _ := memsim.New(memsim.WithOutput(os.Stdout))
//	pid, _ := srv.Submit(ctx, "backup", 512, 5)
//	fmt.Println(srv.Snapshot())
//	_ = srv.Shutdown(ctx)
package memsim
