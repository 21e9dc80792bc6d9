package keys

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinbase/smart-wallet/dumpkey/keys/keytest"
)

func TestParse(t *testing.T) {
	privKey, err := keytest.GenerateKey(1024)
	require.NoError(t, err)

	certPEM, err := keytest.CertificatePEM(privKey)
	require.NoError(t, err)
	pkixPEM, err := keytest.PublicKeyPEM(&privKey.PublicKey)
	require.NoError(t, err)
	pkcs1PEM := keytest.PKCS1PublicKeyPEM(&privKey.PublicKey)

	for name, data := range map[string][]byte{
		"certificate": certPEM,
		"pkix":        pkixPEM,
		"pkcs1":       pkcs1PEM,
	} {
		t.Run(name, func(t *testing.T) {
			key, err := Parse(data)
			require.NoError(t, err)
			require.Equal(t, privKey.N, key.N)
			require.Equal(t, int64(privKey.E), key.E.Int64())
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("not pem at all"))
	require.ErrorIs(t, err, ErrUnparseable)

	garbage := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte{0x30, 0x01, 0x00}})
	_, err = Parse(garbage)
	require.ErrorIs(t, err, ErrUnparseable)
	require.ErrorContains(t, err, "certificate")

	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&ecKey.PublicKey)
	require.NoError(t, err)
	_, err = Parse(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
	require.ErrorIs(t, err, ErrUnparseable)
	require.ErrorContains(t, err, "not an RSA public key")
}

func TestParseFile(t *testing.T) {
	privKey, err := keytest.GenerateKey(1024)
	require.NoError(t, err)
	pkixPEM, err := keytest.PublicKeyPEM(&privKey.PublicKey)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(path, pkixPEM, 0644))

	key, err := ParseFile(path)
	require.NoError(t, err)
	require.Equal(t, privKey.N, key.N)

	_, err = ParseFile(filepath.Join(dir, "missing.pem"))
	require.ErrorIs(t, err, ErrFileNotFound)

	bad := filepath.Join(dir, "bad.pem")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0644))
	_, err = ParseFile(bad)
	require.ErrorIs(t, err, ErrUnparseable)
	require.ErrorContains(t, err, bad)
}

func TestFromHex(t *testing.T) {
	key, err := FromHex("0xBC27F992A96B8E2A", "10001")
	require.NoError(t, err)
	want, _ := new(big.Int).SetString("BC27F992A96B8E2A", 16)
	require.Equal(t, want, key.N)
	require.Equal(t, int64(65537), key.E.Int64())

	// Odd length is left padded.
	key, err = FromHex("abc", "3")
	require.NoError(t, err)
	require.Equal(t, int64(0xabc), key.N.Int64())
	require.Equal(t, int64(3), key.E.Int64())

	_, err = FromHex("xyz", "3")
	require.ErrorIs(t, err, ErrUnparseable)
	_, err = FromHex("abc", "")
	require.ErrorIs(t, err, ErrUnparseable)
}

func TestRSARoundTrip(t *testing.T) {
	privKey, err := keytest.GenerateKey(1024)
	require.NoError(t, err)

	key := FromRSA(&privKey.PublicKey)
	pub, err := key.RSA()
	require.NoError(t, err)
	require.True(t, privKey.PublicKey.Equal(pub))

	key.E = new(big.Int).Lsh(big.NewInt(1), 40)
	_, err = key.RSA()
	require.Error(t, err)
}
