package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/coinbase/smart-wallet/dumpkey/circuits"
	"github.com/coinbase/smart-wallet/dumpkey/circuits/rsa"
	"github.com/coinbase/smart-wallet/dumpkey/dump"
	"github.com/coinbase/smart-wallet/dumpkey/keys"
	"github.com/coinbase/smart-wallet/dumpkey/policy"
	"github.com/coinbase/smart-wallet/dumpkey/utils"
	"github.com/coinbase/smart-wallet/dumpkey/words"
)

func keyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "Path to a PEM certificate or public key",
		},
		&cli.StringFlag{
			Name:  "modulus",
			Usage: "Hex encoded modulus, used instead of --input",
		},
		&cli.StringFlag{
			Name:  "exponent",
			Usage: "Hex encoded public exponent, used with --modulus",
			Value: "10001",
		},
	}
}

func layoutFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "layout",
		Usage:   "Word layout of the arrays (" + strings.Join(words.Layouts(), ", ") + ")",
		Value:   words.Firmware.String(),
		EnvVars: []string{"DUMPKEY_LAYOUT"},
	}
}

func newCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "dump",
			Usage: "Render the Montgomery constants of a key as C declarations",
			Flags: append([]cli.Flag{
				layoutFlag(),
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "Output path for the rendered constants (stdout if empty)",
				},
			}, keyFlags()...),
			Action: DumpConstants,
		},
		{
			Name:   "check",
			Usage:  "Check a key against the exponent and modulus size policy",
			Flags:  keyFlags(),
			Action: CheckKey,
		},
		{
			Name:  "verify",
			Usage: "Verify previously rendered constants against a key",
			Flags: append([]cli.Flag{
				layoutFlag(),
				&cli.StringFlag{
					Name:     "constants",
					Aliases:  []string{"c"},
					Usage:    "Path to the rendered constants",
					Required: true,
				},
			}, keyFlags()...),
			Action: VerifyConstants,
		},
		{
			Name:  "attest",
			Usage: "Generate a groth16 proof that rsa_n0inv matches the key",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:     "output",
					Aliases:  []string{"o"},
					Usage:    "Output path for the proof file",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "verification-key",
					Aliases:  []string{"vk"},
					Usage:    "Output path for the verification key",
					Required: true,
				},
			}, keyFlags()...),
			Action: AttestConstants,
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "dumpkey-cli",
		Usage: "Montgomery constants for firmware RSA verification",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "verbosity",
				Usage:   "Log level (trace, debug, info, warn, error, crit)",
				Value:   "info",
				EnvVars: []string{"DUMPKEY_VERBOSITY"},
			},
		},
		Before:   setupLogging,
		Commands: newCommands(),
	}
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(cCtx *cli.Context) error {
	lvl, err := log.LvlFromString(cCtx.String("verbosity"))
	if err != nil {
		return fmt.Errorf("invalid verbosity: %w", err)
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, false)))
	return nil
}

func loadKey(cCtx *cli.Context) (*keys.PublicKey, error) {
	input, modulus := cCtx.String("input"), cCtx.String("modulus")
	switch {
	case input != "" && modulus != "":
		return nil, fmt.Errorf("--input and --modulus are mutually exclusive")
	case input != "":
		log.Info("Reading key", "path", input)
		return keys.ParseFile(input)
	case modulus != "":
		return keys.FromHex(modulus, cCtx.String("exponent"))
	default:
		return nil, fmt.Errorf("one of --input or --modulus is required")
	}
}

func DumpConstants(cCtx *cli.Context) error {
	layout, err := words.ParseLayout(cCtx.String("layout"))
	if err != nil {
		return err
	}

	key, err := loadKey(cCtx)
	if err != nil {
		return err
	}

	text, err := dump.RenderConstants(dump.LoadedKey{Key: key}, dump.WithLayout(layout))
	if err != nil {
		return fmt.Errorf("failed to render constants: %w", err)
	}

	outputPath := cCtx.String("output")
	if outputPath == "" {
		fmt.Println(text)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(text+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	log.Info("Wrote constants", "path", outputPath, "layout", layout)

	return nil
}

func CheckKey(cCtx *cli.Context) error {
	key, err := loadKey(cCtx)
	if err != nil {
		return err
	}

	if err := policy.Validate(key); err != nil {
		return err
	}

	fingerprint, err := utils.ModulusFingerprint(key.N)
	if err != nil {
		return err
	}
	log.Info("Key accepted", "bits", key.N.BitLen(), "exponent", key.E, "fingerprint", fingerprint.Text(16))

	return nil
}

func VerifyConstants(cCtx *cli.Context) error {
	layout, err := words.ParseLayout(cCtx.String("layout"))
	if err != nil {
		return err
	}

	key, err := loadKey(cCtx)
	if err != nil {
		return err
	}

	constantsPath := cCtx.String("constants")
	text, err := os.ReadFile(constantsPath)
	if err != nil {
		return fmt.Errorf("failed to read constants file: %w", err)
	}

	if err := dump.Verify(string(text), key, layout); err != nil {
		return fmt.Errorf("%s: %w", constantsPath, err)
	}
	log.Info("Constants match the key", "path", constantsPath, "layout", layout)

	return nil
}

func AttestConstants(cCtx *cli.Context) error {
	key, err := loadKey(cCtx)
	if err != nil {
		return err
	}

	res, err := dump.Build(dump.LoadedKey{Key: key})
	if err != nil {
		return fmt.Errorf("failed to compute constants: %w", err)
	}

	log.Info("Generating proof", "n0inv", fmt.Sprintf("0x%08x", res.Constants.N0Inv))
	a, err := circuits.Attest(key.N, res.Constants.N0Inv)
	if err != nil {
		return err
	}

	proofPath := cCtx.String("output")
	proofBuf := bytes.NewBuffer(nil)
	if _, err := a.Proof.WriteTo(proofBuf); err != nil {
		return fmt.Errorf("failed to serialize proof: %w", err)
	}
	if err := os.WriteFile(proofPath, proofBuf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write proof file: %w", err)
	}
	log.Info("Wrote proof", "path", proofPath)

	vkPath := cCtx.String("vk")
	vkBuf := bytes.NewBuffer(nil)
	if _, err := a.VerifyingKey.WriteTo(vkBuf); err != nil {
		return fmt.Errorf("failed to serialize verification key: %w", err)
	}
	if err := os.WriteFile(vkPath, vkBuf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write verification key file: %w", err)
	}
	log.Info("Wrote verification key", "path", vkPath)

	log.Info("Checking rr in circuit")
	if err := rsa.CheckRR(key.N, res.Constants.RR); err != nil {
		return err
	}

	return nil
}
