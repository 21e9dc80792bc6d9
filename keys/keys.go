package keys

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrFileNotFound = errors.New("key file not found")
	ErrUnparseable  = errors.New("not parseable as a certificate or public key")
)

// PublicKey is the numeric part of an RSA public key.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

func FromRSA(pub *rsa.PublicKey) *PublicKey {
	return &PublicKey{
		N: new(big.Int).Set(pub.N),
		E: big.NewInt(int64(pub.E)),
	}
}

// RSA converts the key back to the standard library type. It fails if the
// exponent does not fit in an int.
func (k *PublicKey) RSA() (*rsa.PublicKey, error) {
	if !k.E.IsInt64() || k.E.Int64() > int64(^uint32(0)>>1) {
		return nil, fmt.Errorf("exponent %s too large", k.E)
	}
	return &rsa.PublicKey{N: new(big.Int).Set(k.N), E: int(k.E.Int64())}, nil
}

// ParseFile reads a PEM file and parses it with Parse.
func ParseFile(path string) (*PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	key, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return key, nil
}

// Parse extracts the RSA public key from PEM data holding an X.509
// certificate, a PKIX public key or a PKCS#1 public key. The certificate form
// is tried first.
func Parse(data []byte) (*PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrUnparseable)
	}

	cert, certErr := x509.ParseCertificate(block.Bytes)
	if certErr == nil {
		return fromAny(cert.PublicKey)
	}

	// It may be just a public key.
	pub, pkixErr := x509.ParsePKIXPublicKey(block.Bytes)
	if pkixErr == nil {
		return fromAny(pub)
	}

	rsaPub, pkcs1Err := x509.ParsePKCS1PublicKey(block.Bytes)
	if pkcs1Err == nil {
		return FromRSA(rsaPub), nil
	}

	return nil, fmt.Errorf("%w: %s block: certificate: %v; public key: %v", ErrUnparseable, block.Type, certErr, pkixErr)
}

func fromAny(pub any) (*PublicKey, error) {
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA public key (%T)", ErrUnparseable, pub)
	}
	return FromRSA(rsaPub), nil
}

// FromHex builds a key from hex encoded modulus and exponent. A 0x prefix is
// optional.
func FromHex(n, e string) (*PublicKey, error) {
	nBytes, err := decodeHex(n)
	if err != nil {
		return nil, fmt.Errorf("invalid modulus: %w", err)
	}
	eBytes, err := decodeHex(e)
	if err != nil {
		return nil, fmt.Errorf("invalid exponent: %w", err)
	}

	return &PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: new(big.Int).SetBytes(eBytes),
	}, nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0x" || s == "0X" {
		return nil, fmt.Errorf("%w: empty hex string", ErrUnparseable)
	}
	if !isHex(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")) {
		return nil, fmt.Errorf("%w: %q is not hex", ErrUnparseable, s)
	}
	return common.FromHex(s), nil
}

func isHex(s string) bool {
	for _, c := range []byte(s) {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
