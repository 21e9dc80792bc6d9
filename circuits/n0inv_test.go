package circuits

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/test"

	"github.com/coinbase/smart-wallet/dumpkey/keys/keytest"
	"github.com/coinbase/smart-wallet/dumpkey/montgomery"
)

func TestN0InvCircuit(t *testing.T) {
	assert := test.NewAssert(t)

	n, err := keytest.OddModulus(2048)
	assert.NoError(err)
	c, err := montgomery.Compute(n)
	assert.NoError(err)

	assert.ProverSucceeded(&N0InvCircuit{}, Assignment(n, c.N0Inv),
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))

	assert.ProverFailed(&N0InvCircuit{}, Assignment(n, c.N0Inv+1),
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

func TestN0InvCircuitRejectsOversizedWord(t *testing.T) {
	assert := test.NewAssert(t)

	// 2^32 - 1 is its own negated inverse mod 2^32. Adding 2^32 to it keeps
	// the low bits of the product but must fail the range check.
	n0inv := new(big.Int).SetUint64(1<<32 - 1)
	assert.ProverSucceeded(&N0InvCircuit{}, &N0InvCircuit{N0: 1, N0Inv: n0inv},
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))

	assert.ProverFailed(&N0InvCircuit{}, &N0InvCircuit{N0: 1, N0Inv: new(big.Int).Add(n0inv, new(big.Int).Lsh(big.NewInt(1), 32))},
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

func TestAttest(t *testing.T) {
	assert := test.NewAssert(t)

	n, err := keytest.OddModulus(2048)
	assert.NoError(err)
	c, err := montgomery.Compute(n)
	assert.NoError(err)

	a, err := Attest(n, c.N0Inv)
	assert.NoError(err)
	assert.NoError(a.Verify())

	_, err = Attest(n, c.N0Inv^1)
	assert.Error(err)
}
