package rsa

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"

	"github.com/coinbase/smart-wallet/dumpkey/keys/keytest"
	"github.com/coinbase/smart-wallet/dumpkey/montgomery"
)

func TestRRCircuit(t *testing.T) {
	assert := test.NewAssert(t)

	n, err := keytest.OddModulus(2048)
	assert.NoError(err)
	c, err := montgomery.Compute(n)
	assert.NoError(err)

	err = test.IsSolved(&RRCircuit[Mod2048]{}, RRAssignment(n, c.RR), ecc.BN254.ScalarField())
	assert.NoError(err)

	bad := new(big.Int).Add(c.RR, big.NewInt(1))
	err = test.IsSolved(&RRCircuit[Mod2048]{}, RRAssignment(n, bad), ecc.BN254.ScalarField())
	assert.Error(err)
}

func TestCheckRR(t *testing.T) {
	assert := test.NewAssert(t)

	n, err := keytest.OddModulus(2048)
	assert.NoError(err)
	c, err := montgomery.Compute(n)
	assert.NoError(err)

	assert.NoError(CheckRR(n, c.RR))
	assert.Error(CheckRR(n, new(big.Int).Sub(c.RR, big.NewInt(1))))
}
