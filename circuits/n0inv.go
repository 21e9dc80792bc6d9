package circuits

import (
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/coinbase/smart-wallet/dumpkey/montgomery"
)

// N0InvCircuit proves that N0Inv is the negated inverse of the lowest modulus
// word, i.e. N0*N0Inv + 1 ≡ 0 (mod 2^32).
type N0InvCircuit struct {
	N0    frontend.Variable `gnark:",public"`
	N0Inv frontend.Variable `gnark:",public"`
}

func (c *N0InvCircuit) Define(api frontend.API) error {
	// Both inputs must be machine words.
	api.ToBinary(c.N0, montgomery.WordBits)
	api.ToBinary(c.N0Inv, montgomery.WordBits)

	// The product of two words plus one fits in 2*WordBits+1 bits.
	acc := api.Add(api.Mul(c.N0, c.N0Inv), 1)
	bits := api.ToBinary(acc, 2*montgomery.WordBits+1)

	for i := range montgomery.WordBits {
		api.AssertIsEqual(bits[i], 0)
	}

	return nil
}

// Assignment builds the witness for modulus n and its n0inv.
func Assignment(n *big.Int, n0inv uint32) *N0InvCircuit {
	mask := new(big.Int).SetUint64(1<<montgomery.WordBits - 1)
	return &N0InvCircuit{
		N0:    new(big.Int).And(n, mask),
		N0Inv: new(big.Int).SetUint64(uint64(n0inv)),
	}
}
