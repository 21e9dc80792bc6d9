package montgomery

import (
	"errors"
	"fmt"
	"math/big"
)

// WordBits is the machine word width of the consuming firmware.
const WordBits = 32

var (
	// ErrInvariant marks failures that a valid RSA modulus can never trigger.
	ErrInvariant = errors.New("internal invariant violation")

	// ErrNoInverse is returned when the modulus has no inverse mod 2^WordBits,
	// which only happens for an even modulus.
	ErrNoInverse = fmt.Errorf("%w: modulus has no inverse modulo 2^%d", ErrInvariant, WordBits)
)

// Constants holds the precomputed values a word-oriented Montgomery
// multiplier needs for one modulus.
type Constants struct {
	// N0Inv is -N^-1 mod 2^32.
	N0Inv uint32
	// RR is (2^Bits)^2 mod N.
	RR *big.Int
	// Bits is the bit length of N.
	Bits int
}

// Compute derives N0Inv and RR for the modulus n.
func Compute(n *big.Int) (*Constants, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrInvariant)
	}

	b := new(big.Int).Lsh(big.NewInt(1), WordBits)
	inv, ok := ModInverse(n, b)
	if !ok {
		return nil, ErrNoInverse
	}

	// n0inv = (B - inv) mod B, so that n*n0inv ≡ -1 (mod B).
	n0inv := new(big.Int).Sub(b, inv)
	n0inv.Mod(n0inv, b)

	bits := n.BitLen()
	r := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	rr := new(big.Int).Mul(r, r)
	rr.Mod(rr, n)

	return &Constants{
		N0Inv: uint32(n0inv.Uint64()),
		RR:    rr,
		Bits:  bits,
	}, nil
}

// Check reports whether c satisfies the Montgomery identities for n.
func (c *Constants) Check(n *big.Int) error {
	b := new(big.Int).Lsh(big.NewInt(1), WordBits)
	t := new(big.Int).Mul(n, new(big.Int).SetUint64(uint64(c.N0Inv)))
	t.Mod(t, b)
	if t.Uint64() != uint64(1<<WordBits-1) {
		return fmt.Errorf("n0inv 0x%08x does not satisfy N*n0inv ≡ -1 (mod 2^%d)", c.N0Inv, WordBits)
	}

	if c.RR.Sign() < 0 || c.RR.Cmp(n) >= 0 {
		return errors.New("rr is not in [0, N)")
	}
	r := new(big.Int).Lsh(big.NewInt(1), uint(n.BitLen()))
	want := new(big.Int).Exp(r, big.NewInt(2), n)
	if c.RR.Cmp(want) != 0 {
		return fmt.Errorf("rr does not equal (2^%d)^2 mod N", n.BitLen())
	}

	return nil
}
