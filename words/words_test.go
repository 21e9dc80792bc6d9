package words

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToWordsFirmwareLayout(t *testing.T) {
	// Bytes 01 02 03 04 | 05 06 07 08 are read back as little-endian words.
	v, _ := new(big.Int).SetString("0102030405060708", 16)

	got, err := ToWords(v, 2)
	require.NoError(t, err)
	require.Equal(t, []uint32{0x04030201, 0x08070605}, got)
}

func TestToWordsMatchesByteReversal(t *testing.T) {
	// Reinterpret the little-endian bytes as big-endian, then peel off words
	// from the least significant end.
	v, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 2048))
	require.NoError(t, err)

	le := v.FillBytes(make([]byte, 256))
	for i, j := 0, len(le)-1; i < j; i, j = i+1, j-1 {
		le[i], le[j] = le[j], le[i]
	}
	reversed := new(big.Int).SetBytes(le)

	got, err := ToWords(v, 64)
	require.NoError(t, err)

	mask := big.NewInt(0xffffffff)
	for i := range 64 {
		want := new(big.Int).And(reversed, mask).Uint64()
		require.Equal(t, uint32(want), got[i], "word %d", i)
		reversed.Rsh(reversed, 32)
	}
}

func TestToWordsOtherLayouts(t *testing.T) {
	v, _ := new(big.Int).SetString("0102030405060708", 16)

	got, err := BigEndian.ToWords(v, 2)
	require.NoError(t, err)
	require.Equal(t, []uint32{0x01020304, 0x05060708}, got)

	got, err = LittleEndian.ToWords(v, 2)
	require.NoError(t, err)
	require.Equal(t, []uint32{0x05060708, 0x01020304}, got)
}

func TestToWordsPadsShortValues(t *testing.T) {
	got, err := ToWords(big.NewInt(0x01), 3)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 0, 0x01000000}, got)

	got, err = LittleEndian.ToWords(big.NewInt(0x01), 3)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 0, 0}, got)
}

func TestToWordsErrors(t *testing.T) {
	_, err := ToWords(new(big.Int).Lsh(big.NewInt(1), 64), 2)
	require.ErrorContains(t, err, "does not fit")

	_, err = ToWords(big.NewInt(-1), 2)
	require.Error(t, err)

	_, err = ToWords(big.NewInt(1), 0)
	require.Error(t, err)

	_, err = Layout(42).ToWords(big.NewInt(1), 1)
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	for _, layout := range []Layout{Firmware, BigEndian, LittleEndian} {
		for _, bits := range []int{32, 64, 1024, 2048} {
			v, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
			require.NoError(t, err)
			v.SetBit(v, bits-1, 1)

			w, err := layout.ToWords(v, bits/32)
			require.NoError(t, err)
			require.Len(t, w, bits/32)

			back, err := layout.FromWords(w)
			require.NoError(t, err)
			require.Equal(t, v, back, "layout %s, %d bits", layout, bits)
		}
	}
}

func TestParseLayout(t *testing.T) {
	for in, want := range map[string]Layout{
		"":              Firmware,
		"firmware":      Firmware,
		"Big-Endian":    BigEndian,
		"be":            BigEndian,
		"little-endian": LittleEndian,
		"le":            LittleEndian,
	} {
		got, err := ParseLayout(in)
		require.NoError(t, err)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLayout("middle-endian")
	require.ErrorContains(t, err, "firmware, big-endian, little-endian")

	for _, name := range Layouts() {
		l, err := ParseLayout(name)
		require.NoError(t, err)
		require.Equal(t, name, l.String())
	}
	require.Equal(t, "Layout(9)", Layout(9).String())
}

func TestFormatArray(t *testing.T) {
	got := FormatArray("rsa_N", []uint32{1, 2, 3, 4, 5})
	require.Equal(t,
		"const uint32_t rsa_N[] = {\n\t"+
			"0x00000001,0x00000002,0x00000003,0x00000004,\n\t"+
			"0x00000005};",
		got)

	got = FormatArray("rsa_rr", []uint32{0xdeadbeef, 2, 3, 4, 5, 6, 7, 8})
	require.Equal(t,
		"const uint32_t rsa_rr[] = {\n\t"+
			"0xdeadbeef,0x00000002,0x00000003,0x00000004,\n\t"+
			"0x00000005,0x00000006,0x00000007,0x00000008\n"+
			"};",
		got)
}

func TestFormatScalar(t *testing.T) {
	require.Equal(t, "const uint32_t rsa_n0inv = 0x0000abcd;", FormatScalar("rsa_n0inv", 0xabcd))
}

func TestParseRendered(t *testing.T) {
	words := []uint32{0xffffffff, 0, 7, 0x12345678, 9}
	text := FormatScalar("rsa_n0inv", 0x89abcdef) + "\n\n" + FormatArray("rsa_N", words)

	n0inv, err := ParseScalar(text, "rsa_n0inv")
	require.NoError(t, err)
	require.Equal(t, uint32(0x89abcdef), n0inv)

	got, err := ParseArray(text, "rsa_N")
	require.NoError(t, err)
	require.Equal(t, words, got)

	_, err = ParseArray(text, "rsa_rr")
	require.ErrorContains(t, err, "rsa_rr[] not found")
	_, err = ParseScalar(text, "rsa_N")
	require.Error(t, err)
}
