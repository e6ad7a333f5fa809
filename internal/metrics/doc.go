// Package metrics provides real-time metrics collection for the dispatch core.
//
// It uses a channel-based event pipeline to asynchronously collect metrics about:
//   - Request counts per registered route pattern
//   - Dispatch outcome distribution (success, handler failure, unmatched, malformed)
//   - Response times with percentile calculations (P50, P95, P99)
//   - HTTP status code distribution
//
// The collector runs in a dedicated goroutine and processes events without blocking
// the request path. Events are sent via buffered channels with non-blocking semantics
// so a slow collector never delays a response.
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	// Emit events during dispatch
//	collector.EventChannel() <- metrics.MetricEvent{
//		Type:       metrics.EventDispatchCompleted,
//		Route:      "/items/{id}",
//		Outcome:    metrics.OutcomeSuccess,
//		Duration:   150 * time.Millisecond,
//		StatusCode: 200,
//	}
//
//	// Get metrics snapshot
//	snapshot := collector.Snapshot()
//
// The package provides thread-safe metrics storage using sync.RWMutex and supports
// graceful shutdown with event draining to prevent data loss.
package metrics
