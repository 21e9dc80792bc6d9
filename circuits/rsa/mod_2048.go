package rsa

import "math/big"

// Mod2048 emulates 2048-bit integers as 32 limbs of 64 bits. The field
// modulus 2^2048-1 only bounds the limb representation; RSA arithmetic uses
// the key modulus through the Mod* methods of emulated.Field.
type Mod2048 struct{}

func (Mod2048) NbLimbs() uint     { return 32 }
func (Mod2048) BitsPerLimb() uint { return 64 }
func (Mod2048) IsPrime() bool     { return false }
func (Mod2048) Modulus() *big.Int {
	one := big.NewInt(1)
	return new(big.Int).Sub(new(big.Int).Lsh(one, 2048), one)
}
