package mining

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestAggregateSumsAndResetsCounters(t *testing.T) {
	old := reportInterval
	reportInterval = 10 * time.Millisecond
	defer func() { reportInterval = old }()

	counters := []*atomic.Uint64{{}, {}, {}}
	counters[0].Store(3)
	counters[1].Store(5)
	counters[2].Store(2)

	var hashRate atomic.Uint64
	samples := make(chan uint64, 4)
	sink := RateSinkFunc(func(rate uint64) {
		select {
		case samples <- rate:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go aggregate(ctx, counters, &hashRate, sink)

	select {
	case got := <-samples:
		if got != 10 {
			t.Errorf("first sample = %d, want 10", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for first aggregation tick")
	}

	for _, c := range counters {
		if got := c.Load(); got != 0 {
			t.Errorf("counter not reset after tick: got %d", got)
		}
	}
	if got := hashRate.Load(); got != 10 {
		t.Errorf("hashRate = %d, want 10", got)
	}
}

func TestAggregateStopsOnCancellation(t *testing.T) {
	old := reportInterval
	reportInterval = 10 * time.Millisecond
	defer func() { reportInterval = old }()

	var hashRate atomic.Uint64
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		aggregate(ctx, nil, &hashRate, nil)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("aggregate did not stop after cancellation")
	}
}
