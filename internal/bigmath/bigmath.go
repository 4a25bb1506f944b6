// Package bigmath provides the 256-bit unsigned arithmetic the mining
// engine needs: the difficulty-derived numerator, XOR combination of
// hashes, and integer division against the random candidate's hash.
//
// It is a thin, purpose-named wrapper around math/big.Int rather than a
// fixed-width 256-bit type. Every value the engine keeps fits in 256 bits;
// only MaxUint256 briefly builds the 257-bit value 2^256 before subtracting
// one.
package bigmath

import (
	"fmt"
	"math/big"
)

// one is reused to avoid reallocating on every MaxUint256 call.
var one = big.NewInt(1)

// MaxUint256 returns a fresh 2^256 - 1.
func MaxUint256() *big.Int {
	max := new(big.Int).Lsh(one, 256)
	return max.Sub(max, one)
}

// FromHex parses a "0x"-prefixed or bare hex string into an unsigned
// integer. It rejects non-hex digits.
func FromHex(s string) (*big.Int, error) {
	clean := s
	if len(clean) >= 2 && clean[0] == '0' && (clean[1] == 'x' || clean[1] == 'X') {
		clean = clean[2:]
	}
	if clean == "" {
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(clean, 16)
	if !ok {
		return nil, fmt.Errorf("bigmath: invalid hex string %q", s)
	}
	return n, nil
}

// FromDecimal parses a base-10 string into an unsigned integer.
func FromDecimal(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("bigmath: invalid decimal string %q", s)
	}
	return n, nil
}

// MinimalBytes returns the shortest big-endian byte representation of n.
// The value zero encodes as an empty slice.
func MinimalBytes(n *big.Int) []byte {
	return n.Bytes()
}

// Xor returns a ^ b.
func Xor(a, b *big.Int) *big.Int {
	return new(big.Int).Xor(a, b)
}

// Div returns the quotient of a / b, truncated toward zero. It panics if b
// is zero: callers are expected to have already ruled out a zero
// denominator as an arithmetically impossible event rather than treat it
// as a recoverable error.
func Div(a, b *big.Int) *big.Int {
	if b.Sign() == 0 {
		panic("bigmath: division by zero")
	}
	return new(big.Int).Div(a, b)
}

// GreaterOrEqual reports whether a >= b.
func GreaterOrEqual(a, b *big.Int) bool {
	return a.Cmp(b) >= 0
}
