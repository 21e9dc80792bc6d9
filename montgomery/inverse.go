package montgomery

import "math/big"

// ModInverse returns the x in [0, m) with a*x ≡ 1 (mod m), using the extended
// Euclidean algorithm. The second return value is false when gcd(a, m) != 1 or
// m <= 1. a may be larger than m.
func ModInverse(a, m *big.Int) (*big.Int, bool) {
	if m.Cmp(big.NewInt(1)) <= 0 || a.Sign() < 0 {
		return nil, false
	}

	u1, u2, u3 := big.NewInt(1), big.NewInt(0), new(big.Int).Set(a)
	v1, v2, v3 := big.NewInt(0), big.NewInt(1), new(big.Int).Set(m)

	q := new(big.Int)
	t := new(big.Int)
	for v3.Sign() != 0 {
		q.Quo(u3, v3)

		// (u, v) <- (v, u - q*v)
		t.Mul(q, v1)
		u1.Sub(u1, t)
		t.Mul(q, v2)
		u2.Sub(u2, t)
		t.Mul(q, v3)
		u3.Sub(u3, t)
		u1, v1 = v1, u1
		u2, v2 = v2, u2
		u3, v3 = v3, u3
	}

	// u3 now holds gcd(a, m).
	if u3.Cmp(big.NewInt(1)) != 0 {
		return nil, false
	}

	return u1.Mod(u1, m), true
}
