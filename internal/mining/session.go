package mining

import (
	"context"
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"
)

// Session is the process-wide mining coordinator. It guarantees at most
// one active mining run, owns the shared cancellation token for that run,
// and delivers the terminal result exactly once per accepted Mine call.
// Every exported FFI entry point routes through the single value returned
// by Instance.
type Session struct {
	isMining    atomic.Bool
	hashRate    atomic.Uint64
	resultFound atomic.Bool

	resultMu sync.Mutex
	result   string

	cancelMu sync.Mutex
	cancel   context.CancelFunc
}

var (
	instanceOnce sync.Once
	instance     *Session
)

// Instance returns the process-wide Session singleton, constructing it on
// first use.
func Instance() *Session {
	instanceOnce.Do(func() {
		instance = &Session{}
	})
	return instance
}

// IsMining reports whether a session is currently in progress.
func (s *Session) IsMining() bool {
	return s.isMining.Load()
}

// HashRate returns the most recently aggregated hashes-per-second value.
// It is zero whenever IsMining is false.
func (s *Session) HashRate() uint64 {
	return s.hashRate.Load()
}

// Mine starts a mining session and blocks until it ends, delivering
// exactly one terminal notification to resultSink.
//
// If a session is already active, Mine reports "Already mining" through
// resultSink without disturbing the in-flight session and returns
// immediately.
func (s *Session) Mine(in Inputs, rateSink RateSink, resultSink ResultSink) {
	ctx, cancel := context.WithCancel(context.Background())

	// The claim (isMining) and the cancellation token for that claim are
	// set together under cancelMu so Stop can never observe isMining true
	// with a stale or nil cancel.
	s.cancelMu.Lock()
	if s.isMining.Load() {
		s.cancelMu.Unlock()
		cancel()
		resultSink.OnResult(false, "", errAlreadyMining)
		return
	}
	s.isMining.Store(true)
	s.cancel = cancel
	s.cancelMu.Unlock()

	s.hashRate.Store(0)
	s.resultFound.Store(false)
	s.setResult("")

	constants, err := deriveConstants(in)
	if err != nil {
		s.cancelMu.Lock()
		s.cancel = nil
		s.cancelMu.Unlock()
		s.isMining.Store(false)
		s.hashRate.Store(0)
		cancel()
		resultSink.OnResult(false, "", err.Error())
		return
	}

	workerCount := resolveWorkerCount(in.MaxThreads)
	counters := make([]*atomic.Uint64, workerCount)
	for i := range counters {
		counters[i] = &atomic.Uint64{}
	}

	var workers sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		w := &worker{amount: in.Amount, constants: constants, counter: counters[i]}
		workers.Add(1)
		go func() {
			defer workers.Done()
			w.run(ctx, func(candidate *big.Int) bool {
				return s.trySetWinner(candidate, cancel)
			})
		}()
	}

	var aggregator sync.WaitGroup
	aggregator.Add(1)
	go func() {
		defer aggregator.Done()
		aggregate(ctx, counters, &s.hashRate, rateSink)
	}()

	workers.Wait()
	// Every worker only returns after the shared context is cancelled, so
	// this is always idempotent by the time we reach it — it exists to
	// guarantee the aggregator stops even on the rare path where every
	// worker above was stopped by something other than cancel() itself.
	cancel()
	aggregator.Wait()

	s.isMining.Store(false)
	s.hashRate.Store(0)

	s.cancelMu.Lock()
	s.cancel = nil
	s.cancelMu.Unlock()

	if result := s.getResult(); result != "" {
		resultSink.OnResult(true, result, "")
	} else {
		resultSink.OnResult(false, "", errAborted)
	}
}

// Stop requests cancellation of the active session, if any. It does not
// wait for workers to join: the join happens inside the in-flight Mine
// call, which delivers the terminal result once it completes. Calling
// Stop when no session is active is a no-op.
func (s *Session) Stop() {
	s.cancelMu.Lock()
	active := s.isMining.Load()
	cancel := s.cancel
	s.cancelMu.Unlock()

	if !active {
		return
	}

	if cancel != nil {
		cancel()
	}

	s.isMining.Store(false)
	s.hashRate.Store(0)
}

// trySetWinner attempts to claim the single winning slot for candidate. It
// returns true iff this call was the one that claimed it.
func (s *Session) trySetWinner(candidate *big.Int, cancel context.CancelFunc) bool {
	if !s.resultFound.CompareAndSwap(false, true) {
		return false
	}
	s.setResult(candidate.Text(10))
	cancel()
	return true
}

func (s *Session) setResult(value string) {
	s.resultMu.Lock()
	s.result = value
	s.resultMu.Unlock()
}

func (s *Session) getResult() string {
	s.resultMu.Lock()
	defer s.resultMu.Unlock()
	return s.result
}

// resolveWorkerCount clamps hardware concurrency down to maxThreads only
// when 0 < maxThreads < hardware concurrency.
func resolveWorkerCount(maxThreads uint32) int {
	return clampWorkers(maxThreads, runtime.NumCPU())
}

// clampWorkers is resolveWorkerCount's pure core, split out so tests can
// exercise the clamping rule without depending on the test machine's
// actual core count.
func clampWorkers(maxThreads uint32, available int) int {
	if maxThreads > 0 && int(maxThreads) < available {
		return int(maxThreads)
	}
	return available
}
