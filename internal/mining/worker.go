package mining

import (
	"context"
	"crypto/rand"
	"math/big"
	"sync/atomic"

	"github.com/cryptopia/skalegasminer/internal/bigmath"
	"github.com/cryptopia/skalegasminer/internal/hexutil"
	"github.com/cryptopia/skalegasminer/internal/keccak"
)

// worker runs one SearchKernel loop: draw a random 32-byte candidate, hash
// it, XOR with the session's precomputed value, divide the numerator by
// the result, and compare against amount. It owns no state shared with
// sibling workers besides the cancellation context and the session's
// result slot.
type worker struct {
	amount    uint64
	constants derivedConstants
	counter   *atomic.Uint64

	// randRead is overridable in tests to make the search deterministic;
	// production code always leaves it nil and falls back to
	// crypto/rand.Read.
	randRead func([]byte) (int, error)
}

// run executes the search loop until ctx is cancelled or a winning
// candidate is found and published via trySetWinner. It never shares its
// random source with another worker: each call to run draws from its own
// buffer via crypto/rand, which is safe for concurrent independent use
// across goroutines.
func (w *worker) run(ctx context.Context, trySetWinner func(candidate *big.Int) bool) {
	read := w.randRead
	if read == nil {
		read = rand.Read
	}

	candidateBytes := make([]byte, 32)
	amount := new(big.Int).SetUint64(w.amount)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if _, err := read(candidateBytes); err != nil {
			continue
		}

		candidate := new(big.Int).SetBytes(candidateBytes)
		hashed, err := hashCandidate(candidate)
		if err != nil {
			continue
		}

		denom := bigmath.Xor(w.constants.precomputed, hashed)
		w.counter.Add(1)

		if denom.Sign() == 0 {
			// A 256-bit collision between hashed and precomputed: an
			// arithmetically impossible event in practice. Skip rather
			// than divide by zero.
			continue
		}

		externalGas := bigmath.Div(w.constants.numerator, denom)
		if bigmath.GreaterOrEqual(externalGas, amount) {
			trySetWinner(candidate)
			return
		}
	}
}

// hashCandidate hashes candidate's minimal big-endian encoding, which is
// equivalent to hex-encoding candidateBytes and parsing it back to an
// integer before hashing, since candidate already is the big-endian
// integer view of candidateBytes.
func hashCandidate(candidate *big.Int) (*big.Int, error) {
	return hexutil.ToUint(keccak.BigInt(candidate))
}
