package circuits

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// Attestation is a groth16 proof that a modulus/n0inv pair is consistent.
type Attestation struct {
	Proof         groth16.Proof
	VerifyingKey  groth16.VerifyingKey
	PublicWitness witness.Witness
}

// Compile compiles N0InvCircuit for BN254.
func Compile() (constraint.ConstraintSystem, error) {
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &N0InvCircuit{})
	if err != nil {
		return nil, fmt.Errorf("failed to compile circuit: %w", err)
	}
	return cs, nil
}

// Attest runs a fresh setup, proves the n0inv identity for n and checks the
// proof before returning it.
func Attest(n *big.Int, n0inv uint32) (*Attestation, error) {
	cs, err := Compile()
	if err != nil {
		return nil, err
	}

	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, fmt.Errorf("failed to setup circuit: %w", err)
	}

	w, err := frontend.NewWitness(Assignment(n, n0inv), ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("failed to create witness: %w", err)
	}

	proof, err := groth16.Prove(cs, pk, w)
	if err != nil {
		return nil, fmt.Errorf("failed to generate proof: %w", err)
	}

	publicWitness, err := w.Public()
	if err != nil {
		return nil, fmt.Errorf("failed to extract public witness: %w", err)
	}

	a := &Attestation{Proof: proof, VerifyingKey: vk, PublicWitness: publicWitness}
	if err := a.Verify(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Attestation) Verify() error {
	if err := groth16.Verify(a.Proof, a.VerifyingKey, a.PublicWitness); err != nil {
		return fmt.Errorf("invalid proof: %w", err)
	}
	return nil
}
