// Package mining implements the proof-of-work search: fixed 256-bit
// arithmetic over Keccak-256 digests, a multi-goroutine random candidate
// search with early-exit on first success, a rolling hash-rate aggregator,
// and a singleton session lifecycle that guarantees at most one active
// mining run at a time.
package mining

import "math/big"

// RateSink receives periodic hash-rate telemetry, once per aggregation
// tick, from the goroutine that ran the tick.
type RateSink interface {
	OnRate(hashesPerSecond uint64)
}

// RateSinkFunc adapts a plain function to RateSink.
type RateSinkFunc func(hashesPerSecond uint64)

// OnRate implements RateSink.
func (f RateSinkFunc) OnRate(hashesPerSecond uint64) { f(hashesPerSecond) }

// ResultSink receives exactly one terminal notification per accepted Mine
// call, from the goroutine that called Mine.
type ResultSink interface {
	OnResult(success bool, candidate string, errMsg string)
}

// ResultSinkFunc adapts a plain function to ResultSink.
type ResultSinkFunc func(success bool, candidate string, errMsg string)

// OnResult implements ResultSink.
func (f ResultSinkFunc) OnResult(success bool, candidate string, errMsg string) {
	f(success, candidate, errMsg)
}

// Inputs are the per-session parameters supplied to Mine. They are
// immutable for the lifetime of the session they start.
type Inputs struct {
	// Amount is the minimum acceptable external-gas value.
	Amount uint64
	// FromAddress is a hex string (with or without "0x") identifying the
	// account on whose behalf gas is being mined.
	FromAddress string
	// Nonce is mixed into the derived constants alongside FromAddress.
	Nonce uint64
	// Difficulty must be strictly positive; it is the divisor of 2^256-1
	// when computing the numerator.
	Difficulty uint32
	// MaxThreads caps the worker count; zero means "use all available
	// cores".
	MaxThreads uint32
}

// derivedConstants are computed once before worker spawn and shared
// read-only by every worker for the lifetime of the session.
type derivedConstants struct {
	numerator   *big.Int
	precomputed *big.Int
}
