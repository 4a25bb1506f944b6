package keccak

import (
	"math/big"
	"testing"
)

// knownEmpty is the well-known Keccak-256 digest of the empty byte string.
const knownEmpty = "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"

func TestBytesEmpty(t *testing.T) {
	if got := Bytes(nil); got != knownEmpty {
		t.Errorf("Bytes(nil) = %s, want %s", got, knownEmpty)
	}
}

func TestUint64ZeroMatchesThirtyTwoZeroBytes(t *testing.T) {
	zero32 := make([]byte, 32)
	if got, want := Uint64(0), Bytes(zero32); got != want {
		t.Errorf("Uint64(0) = %s, want %s (Keccak-256 of 32 zero bytes)", got, want)
	}
}

func TestUint64OneMatchesPaddedBytes(t *testing.T) {
	preimage := make([]byte, 32)
	preimage[31] = 0x01
	if got, want := Uint64(1), Bytes(preimage); got != want {
		t.Errorf("Uint64(1) = %s, want %s (Keccak-256 of 31 zero bytes + 0x01)", got, want)
	}
}

func TestBigIntZeroHashesEmptyBytes(t *testing.T) {
	if got, want := BigInt(big.NewInt(0)), knownEmpty; got != want {
		t.Errorf("BigInt(0) = %s, want %s", got, want)
	}
}

func TestBigIntUsesMinimalEncoding(t *testing.T) {
	// BigInt(0xff) must hash a single byte 0xff, not a 32-byte padded form.
	if got, want := BigInt(big.NewInt(0xff)), Bytes([]byte{0xff}); got != want {
		t.Errorf("BigInt(0xff) = %s, want %s", got, want)
	}
	if got := BigInt(big.NewInt(0xff)); got == Uint64(0xff) {
		t.Error("BigInt and Uint64 must diverge: minimal vs 32-byte padded encoding")
	}
}

func TestSum256Deterministic(t *testing.T) {
	data := []byte("skale-gas-miner")
	a := Sum256(data)
	b := Sum256(data)
	if a != b {
		t.Error("Sum256 is not deterministic for identical input")
	}
}

func TestBytesLowercaseAndPrefixed(t *testing.T) {
	got := Bytes([]byte("test"))
	if len(got) != 2+64 {
		t.Fatalf("Bytes output length = %d, want %d", len(got), 2+64)
	}
	if got[:2] != "0x" {
		t.Errorf("Bytes output missing 0x prefix: %s", got)
	}
	for _, c := range got[2:] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Errorf("Bytes output is not lowercase hex: %s", got)
			break
		}
	}
}
