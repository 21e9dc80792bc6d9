package utils

import (
	"fmt"
	"math/big"

	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/mdehoog/poseidon/poseidon"
)

// ElementSize is the number of bytes packed into one BN254 scalar field
// element. 31 bytes always fit below the field modulus.
const ElementSize = 31

// ModulusFingerprint hashes the big-endian bytes of n with Poseidon over the
// BN254 scalar field.
func ModulusFingerprint(n *big.Int) (*big.Int, error) {
	if n == nil || n.Sign() <= 0 {
		return nil, fmt.Errorf("modulus must be positive")
	}

	elements, err := BytesToElements(n.Bytes(), ElementSize)
	if err != nil {
		return nil, fmt.Errorf("failed to convert modulus to %d-byte elements: %w", ElementSize, err)
	}

	// The byte length prefix makes the short trailing element unambiguous.
	inputs := append([]*big.Int{big.NewInt(int64(len(n.Bytes())))}, elements...)

	fingerprint, err := poseidon.HashMulti[*bn254fr.Element](inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to hash modulus: %w", err)
	}

	return fingerprint, nil
}
