// Package hexutil parses and formats the hexadecimal strings the mining
// engine exchanges with its caller: addresses, candidates, and hashes.
package hexutil

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

// ToBytes strips a leading "0x"/"0X" prefix if present, left-pads an odd
// length with a single "0", and decodes the result to bytes.
func ToBytes(s string) ([]byte, error) {
	s = stripPrefix(s)
	if len(s)%2 != 0 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("hexutil: invalid hex string %q: %w", s, err)
	}
	return b, nil
}

// ToUint interprets ToBytes(s) as a big-endian unsigned integer of
// arbitrary width.
func ToUint(s string) (*big.Int, error) {
	b, err := ToBytes(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// UintToString renders n in the given base. Only base 10 and 16 are
// supported; base 16 is lowercase and unprefixed. The value zero renders
// as "0" in either base.
func UintToString(n *big.Int, base int) (string, error) {
	switch base {
	case 10, 16:
		return n.Text(base), nil
	default:
		return "", fmt.Errorf("hexutil: invalid base %d", base)
	}
}

// BytesToHex encodes b as a lowercase "0x"-prefixed hex string.
func BytesToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

func stripPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
