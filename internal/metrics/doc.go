// Package metrics provides slice-computation metrics collection and reporting.
//
// Metrics collects statistics about slice timing and throughput. It is
// thread-safe and cheap enough to call from every job.
//
// # Basic Usage
//
//	m := metrics.New()
//
//	// Record slices
//	start := time.Now()
//	// ... sieve a slice ...
//	m.RecordSlice(time.Since(start))
//
//	// Get statistics
//	fmt.Printf("Slices: %d, avg: %v, P99: %v\n",
//	    m.SlicesDone(), m.AverageSliceTime(), m.P99SliceTime())
//
//	// Get a snapshot
//	snap := m.Snapshot()
//
// # Configuration
//
// Use NewWithConfig for custom settings:
//
//	config := metrics.Config{
//	    MaxSampleCount: 5000, // More samples for P99 accuracy
//	}
//	m := metrics.NewWithConfig(config)
//
// # Thread Safety
//
// All operations use atomic counters and are safe for concurrent access.
package metrics
