package utils

import (
	"fmt"
	"math/big"
)

// BytesToElements splits bytes into big-endian integers of elementSize bytes
// each. The last element holds the remainder when len(bytes) is not a
// multiple of elementSize.
func BytesToElements(bytes []byte, elementSize int) ([]*big.Int, error) {
	if len(bytes) == 0 {
		return nil, fmt.Errorf("input bytes cannot be empty")
	}
	if elementSize <= 0 {
		return nil, fmt.Errorf("invalid element size %d", elementSize)
	}

	elements := make([]*big.Int, 0, (len(bytes)+elementSize-1)/elementSize)
	for start := 0; start < len(bytes); start += elementSize {
		end := min(start+elementSize, len(bytes))
		elements = append(elements, new(big.Int).SetBytes(bytes[start:end]))
	}

	return elements, nil
}
