package dump

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/coinbase/smart-wallet/dumpkey/keys"
	"github.com/coinbase/smart-wallet/dumpkey/montgomery"
	"github.com/coinbase/smart-wallet/dumpkey/policy"
	"github.com/coinbase/smart-wallet/dumpkey/words"
)

// Names of the rendered declarations.
const (
	N0InvName   = "rsa_n0inv"
	ModulusName = "rsa_N"
	RRName      = "rsa_rr"
)

// Input is where the key comes from: a FilePath, PEMBytes or a LoadedKey.
type Input interface {
	isInput()
}

// FilePath names a PEM certificate or public key on disk.
type FilePath string

// PEMBytes holds an already read PEM certificate or public key.
type PEMBytes []byte

// LoadedKey is a key that has already been parsed.
type LoadedKey struct {
	Key *keys.PublicKey
}

func (FilePath) isInput()  {}
func (PEMBytes) isInput()  {}
func (LoadedKey) isInput() {}

type options struct {
	layout words.Layout
	logger log.Logger
}

type Option func(*options)

// WithLayout selects the word layout of the rendered arrays.
func WithLayout(l words.Layout) Option {
	return func(o *options) { o.layout = l }
}

func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Result is everything derived from one key.
type Result struct {
	Key       *keys.PublicKey
	Constants *montgomery.Constants
	Layout    words.Layout
	N         []uint32
	RR        []uint32
	Text      string
}

// RenderConstants validates the key and renders rsa_n0inv, rsa_N and rsa_rr
// as C declarations separated by blank lines.
func RenderConstants(in Input, opts ...Option) (string, error) {
	res, err := Build(in, opts...)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Build runs the whole pipeline and returns the intermediate values along
// with the rendered text.
func Build(in Input, opts ...Option) (*Result, error) {
	o := options{layout: words.Firmware, logger: log.Root()}
	for _, opt := range opts {
		opt(&o)
	}

	key, err := load(in)
	if err != nil {
		return nil, err
	}

	if err := policy.Validate(key); err != nil {
		return nil, err
	}
	o.logger.Debug("Key accepted", "bits", key.N.BitLen(), "exponent", key.E)

	constants, err := montgomery.Compute(key.N)
	if err != nil {
		return nil, fmt.Errorf("failed to compute Montgomery constants: %w", err)
	}
	o.logger.Debug("Computed Montgomery constants", "n0inv", fmt.Sprintf("0x%08x", constants.N0Inv))

	nwords := key.N.BitLen() / montgomery.WordBits
	n, err := o.layout.ToWords(key.N, nwords)
	if err != nil {
		return nil, fmt.Errorf("failed to serialise modulus: %w", err)
	}
	rr, err := o.layout.ToWords(constants.RR, nwords)
	if err != nil {
		return nil, fmt.Errorf("failed to serialise rr: %w", err)
	}

	text := strings.Join([]string{
		words.FormatScalar(N0InvName, constants.N0Inv),
		words.FormatArray(ModulusName, n),
		words.FormatArray(RRName, rr),
	}, "\n\n")

	return &Result{
		Key:       key,
		Constants: constants,
		Layout:    o.layout,
		N:         n,
		RR:        rr,
		Text:      text,
	}, nil
}

func load(in Input) (*keys.PublicKey, error) {
	switch in := in.(type) {
	case FilePath:
		return keys.ParseFile(string(in))
	case PEMBytes:
		return keys.Parse(in)
	case LoadedKey:
		if in.Key == nil || in.Key.N == nil || in.Key.E == nil {
			return nil, fmt.Errorf("loaded key is incomplete")
		}
		return in.Key, nil
	default:
		return nil, fmt.Errorf("unsupported input %T", in)
	}
}

// Verify parses rendered text back and checks it against key: the modulus
// words must reproduce N, n0inv must satisfy N*n0inv ≡ -1 (mod 2^32) and rr
// must equal (2^bits)^2 mod N.
func Verify(text string, key *keys.PublicKey, layout words.Layout) error {
	n0inv, err := words.ParseScalar(text, N0InvName)
	if err != nil {
		return err
	}
	nWords, err := words.ParseArray(text, ModulusName)
	if err != nil {
		return err
	}
	rrWords, err := words.ParseArray(text, RRName)
	if err != nil {
		return err
	}

	want := key.N.BitLen() / montgomery.WordBits
	if len(nWords) != want || len(rrWords) != want {
		return fmt.Errorf("expected %d words, got %d for %s and %d for %s", want, len(nWords), ModulusName, len(rrWords), RRName)
	}

	n, err := layout.FromWords(nWords)
	if err != nil {
		return err
	}
	if n.Cmp(key.N) != 0 {
		return fmt.Errorf("%s does not match the key modulus", ModulusName)
	}

	rr, err := layout.FromWords(rrWords)
	if err != nil {
		return err
	}

	c := &montgomery.Constants{N0Inv: n0inv, RR: rr, Bits: n.BitLen()}
	if err := c.Check(key.N); err != nil {
		return fmt.Errorf("rendered constants are wrong: %w", err)
	}
	return nil
}
