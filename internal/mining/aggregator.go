package mining

import (
	"context"
	"sync/atomic"
	"time"
)

// reportInterval is the aggregation tick period, fixed at one wall-clock
// second. It is a var rather than a const purely so tests can shrink it
// without waiting on a real second per assertion.
var reportInterval = time.Second

// aggregate runs on its own goroutine until ctx is cancelled. Once per
// tick it snapshots and resets every worker counter, stores the sum into
// hashRate, and forwards the sum to sink. It is not required to be
// phase-aligned with the workers: a transient undercount within one tick
// is acceptable so long as the total counted across a session equals the
// total worker iterations, modulo the final partial tick.
func aggregate(ctx context.Context, counters []*atomic.Uint64, hashRate *atomic.Uint64, sink RateSink) {
	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var sum uint64
			for _, c := range counters {
				sum += c.Swap(0)
			}
			hashRate.Store(sum)
			if sink != nil {
				sink.OnRate(sum)
			}
		}
	}
}
