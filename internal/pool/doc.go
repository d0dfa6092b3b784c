// Package pool provides a bounded pool of persistent workers with a
// ticket-ordered completion barrier.
//
// The Pool owns a fixed set of worker goroutines created at New and keeps
// no job queue: submitting with WaitForWorker blocks the caller until a
// worker is idle and hands the job over directly. This is deliberate
// backpressure; burst submission never accumulates unbounded memory.
//
// Every submission is assigned a monotonically increasing ticket. Inside a
// job, (*Job).Ordered runs a critical section in strict submission order
// across concurrently running jobs, so shared accumulators can be updated
// both safely and deterministically while the bulk of each job stays
// parallel.
//
// # Basic Usage
//
//	p, err := pool.New(4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Shutdown()
//
//	for i := 0; i < 100; i++ {
//	    _ = p.Submit(func(j *pool.Job) error {
//	        partial := compute()
//	        j.Ordered(func() {
//	            total += partial // submission-ordered, mutually exclusive
//	        })
//	        return nil
//	    }, pool.WaitForWorker)
//	}
//	p.WaitAll()
//
// # Synchronous Mode
//
// New(0) creates a pool with no background workers; every submission runs
// synchronously on the caller with identical ticket semantics. This makes
// otherwise-concurrent logic testable single-threaded. RunInline does the
// same for a single submission, which is useful for the final job when the
// caller is about to wait anyway.
package pool
