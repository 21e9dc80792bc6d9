package rsa

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/std/math/emulated"
)

// RRCircuit checks RR ≡ (2^k)^2 (mod N), where k is the emulated width.
type RRCircuit[T emulated.FieldParams] struct {
	N  emulated.Element[T] `gnark:",public"`
	RR emulated.Element[T] `gnark:",public"`
}

func (c *RRCircuit[T]) Define(api frontend.API) error {
	f, err := emulated.NewField[T](api)
	if err != nil {
		return err
	}

	var fp T
	bits := fp.NbLimbs() * fp.BitsPerLimb()

	// 2^k does not fit in k bits, so build R mod N as (2^(k/2))^2.
	half := emulated.ValueOf[T](new(big.Int).Lsh(big.NewInt(1), bits/2))
	r := f.ModMul(&half, &half, &c.N)
	rr := f.ModMul(r, r, &c.N)
	f.ModAssertIsEqual(rr, &c.RR, &c.N)

	return nil
}

func RRAssignment(n, rr *big.Int) *RRCircuit[Mod2048] {
	return &RRCircuit[Mod2048]{
		N:  emulated.ValueOf[Mod2048](n),
		RR: emulated.ValueOf[Mod2048](rr),
	}
}

// CheckRR compiles RRCircuit for 2048-bit keys and checks that n and rr
// satisfy it.
func CheckRR(n, rr *big.Int) error {
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &RRCircuit[Mod2048]{})
	if err != nil {
		return fmt.Errorf("failed to compile circuit: %w", err)
	}

	w, err := frontend.NewWitness(RRAssignment(n, rr), ecc.BN254.ScalarField())
	if err != nil {
		return fmt.Errorf("failed to create witness: %w", err)
	}

	if err := cs.IsSolved(w); err != nil {
		return fmt.Errorf("rr circuit not satisfied: %w", err)
	}
	return nil
}
