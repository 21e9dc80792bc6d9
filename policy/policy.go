package policy

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/coinbase/smart-wallet/dumpkey/keys"
)

// ModulusBits is the only accepted modulus size.
const ModulusBits = 2048

// AllowedExponents lists the accepted public exponents.
var AllowedExponents = []int64{3, 65537}

var ErrPolicy = errors.New("key policy violation")

type InvalidExponentError struct {
	Got      *big.Int
	Expected []int64
}

func (e *InvalidExponentError) Error() string {
	return fmt.Sprintf("public exponent should be in %v but is %s", e.Expected, e.Got)
}

func (e *InvalidExponentError) Is(target error) bool { return target == ErrPolicy }

type InvalidModulusLengthError struct {
	Got      int
	Expected int
}

func (e *InvalidModulusLengthError) Error() string {
	return fmt.Sprintf("modulus should be %d bits long but is %d bits", e.Expected, e.Got)
}

func (e *InvalidModulusLengthError) Is(target error) bool { return target == ErrPolicy }

// Validate checks the key's exponent and modulus size.
func Validate(key *keys.PublicKey) error {
	if !exponentAllowed(key.E) {
		return &InvalidExponentError{Got: new(big.Int).Set(key.E), Expected: AllowedExponents}
	}

	if bits := key.N.BitLen(); bits != ModulusBits {
		return &InvalidModulusLengthError{Got: bits, Expected: ModulusBits}
	}

	return nil
}

func exponentAllowed(e *big.Int) bool {
	if e == nil || !e.IsInt64() {
		return false
	}
	for _, allowed := range AllowedExponents {
		if e.Int64() == allowed {
			return true
		}
	}
	return false
}
