package words

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"
)

// Layout selects how a big integer is split into 32-bit words.
type Layout int

const (
	// Firmware is the layout the signature verifier loader expects: the
	// value's big-endian bytes are read four at a time as little-endian
	// words, most significant bytes first.
	Firmware Layout = iota
	// BigEndian puts the most significant word first.
	BigEndian
	// LittleEndian puts the least significant word first.
	LittleEndian
)

var layoutNames = map[Layout]string{
	Firmware:     "firmware",
	BigEndian:    "big-endian",
	LittleEndian: "little-endian",
}

func (l Layout) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// Layouts returns the names accepted by ParseLayout.
func Layouts() []string {
	return []string{Firmware.String(), BigEndian.String(), LittleEndian.String()}
}

func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "firmware":
		return Firmware, nil
	case "big-endian", "be":
		return BigEndian, nil
	case "little-endian", "le":
		return LittleEndian, nil
	}
	return 0, fmt.Errorf("unknown word layout %q (want one of %s)", s, strings.Join(Layouts(), ", "))
}

// ToWords splits v into exactly count words. v must be non-negative and fit
// in count*32 bits; shorter values are zero padded.
func (l Layout) ToWords(v *big.Int, count int) ([]uint32, error) {
	if _, ok := layoutNames[l]; !ok {
		return nil, fmt.Errorf("unknown word layout %d", int(l))
	}
	if count <= 0 {
		return nil, fmt.Errorf("invalid word count %d", count)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("cannot serialise negative value")
	}
	if v.BitLen() > count*32 {
		return nil, fmt.Errorf("value of %d bits does not fit in %d words", v.BitLen(), count)
	}

	buf := v.FillBytes(make([]byte, count*4))
	words := make([]uint32, count)
	for i := range words {
		chunk := buf[i*4 : (i+1)*4]
		switch l {
		case Firmware:
			words[i] = binary.LittleEndian.Uint32(chunk)
		case BigEndian:
			words[i] = binary.BigEndian.Uint32(chunk)
		case LittleEndian:
			words[count-1-i] = binary.BigEndian.Uint32(chunk)
		}
	}

	return words, nil
}

// FromWords is the inverse of ToWords.
func (l Layout) FromWords(words []uint32) (*big.Int, error) {
	if _, ok := layoutNames[l]; !ok {
		return nil, fmt.Errorf("unknown word layout %d", int(l))
	}

	count := len(words)
	buf := make([]byte, count*4)
	for i := range count {
		chunk := buf[i*4 : (i+1)*4]
		switch l {
		case Firmware:
			binary.LittleEndian.PutUint32(chunk, words[i])
		case BigEndian:
			binary.BigEndian.PutUint32(chunk, words[i])
		case LittleEndian:
			binary.BigEndian.PutUint32(chunk, words[count-1-i])
		}
	}

	return new(big.Int).SetBytes(buf), nil
}

// ToWords splits v into count words using the Firmware layout.
func ToWords(v *big.Int, count int) ([]uint32, error) {
	return Firmware.ToWords(v, count)
}
