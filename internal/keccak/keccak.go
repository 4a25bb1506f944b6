// Package keccak computes the pre-NIST Keccak-256 digest ("soliditySha3")
// the mining engine needs to match an on-chain verification formula. This
// is Ethereum's Keccak-256 (0x01 padding), not the standardized SHA3-256
// (0x06 padding) — the two differ only in the domain separator byte, but
// that difference changes every digest.
//
// Go's stdlib crypto/sha3 only exposes SHA-3 proper; golang.org/x/crypto/sha3
// is the portable path the ecosystem uses for Keccak-256, the same one
// go-ethereum's own wrapper falls back to on platforms without a
// hand-written permutation assembly.
package keccak

import (
	"encoding/binary"
	"hash"
	"math/big"
	"sync"

	"golang.org/x/crypto/sha3"
)

const digestSize = 32

// hasherPool amortizes the allocation of the Keccak sponge state across the
// worker hot loop, where Sum256 is called on the order of millions of times
// per second across all workers.
var hasherPool = sync.Pool{
	New: func() any {
		return sha3.NewLegacyKeccak256()
	},
}

// Sum256 returns the raw 32-byte Keccak-256 digest of data.
func Sum256(data []byte) [digestSize]byte {
	h := hasherPool.Get().(hash.Hash)
	defer func() {
		h.Reset()
		hasherPool.Put(h)
	}()

	h.Write(data)
	var out [digestSize]byte
	h.Sum(out[:0])
	return out
}

// Bytes computes the solidity-style Keccak-256 hash of val and returns it
// as a lowercase "0x"-prefixed hex string.
func Bytes(val []byte) string {
	digest := Sum256(val)
	return toHex(digest[:])
}

// BigInt computes the solidity-style Keccak-256 hash of n's minimal
// big-endian encoding (the value zero hashes the empty byte string).
func BigInt(n *big.Int) string {
	return Bytes(n.Bytes())
}

// Uint64 computes the solidity-style Keccak-256 hash of val encoded as 32
// big-endian bytes, left-padded with zeros. This differs deliberately from
// BigInt's minimal encoding: a nonce is always hashed over its full 32-byte
// width, and unifying the two encodings would silently invalidate every
// candidate derived from it.
func Uint64(val uint64) string {
	var padded [digestSize]byte
	binary.BigEndian.PutUint64(padded[digestSize-8:], val)
	return Bytes(padded[:])
}

const hextable = "0123456789abcdef"

func toHex(b []byte) string {
	out := make([]byte, 2+len(b)*2)
	out[0], out[1] = '0', 'x'
	for i, c := range b {
		out[2+i*2] = hextable[c>>4]
		out[2+i*2+1] = hextable[c&0x0f]
	}
	return string(out)
}
