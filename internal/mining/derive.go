package mining

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/cryptopia/skalegasminer/internal/bigmath"
	"github.com/cryptopia/skalegasminer/internal/hexutil"
	"github.com/cryptopia/skalegasminer/internal/keccak"
)

// deriveConstants computes the numerator and the precomputed nonce/address
// hash XOR once per session, before any worker is spawned.
func deriveConstants(in Inputs) (derivedConstants, error) {
	if in.Difficulty == 0 {
		return derivedConstants{}, fmt.Errorf("mining: difficulty must be positive")
	}

	numerator := bigmath.Div(bigmath.MaxUint256(), big.NewInt(int64(in.Difficulty)))

	var nonceBytes [32]byte
	binary.BigEndian.PutUint64(nonceBytes[24:], in.Nonce)
	nonceHash, err := hexutil.ToUint(keccak.Bytes(nonceBytes[:]))
	if err != nil {
		return derivedConstants{}, fmt.Errorf("mining: hashing nonce: %w", err)
	}

	fromBytes, err := hexutil.ToBytes(in.FromAddress)
	if err != nil {
		return derivedConstants{}, fmt.Errorf("mining: invalid from_address: %w", err)
	}
	fromHash, err := hexutil.ToUint(keccak.Bytes(fromBytes))
	if err != nil {
		return derivedConstants{}, fmt.Errorf("mining: hashing from_address: %w", err)
	}

	return derivedConstants{
		numerator:   numerator,
		precomputed: bigmath.Xor(nonceHash, fromHash),
	}, nil
}
