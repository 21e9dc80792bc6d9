package main

import (
	"fmt"
	"os"

	"github.com/coinbase/smart-wallet/dumpkey/dump"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <certificate or public key PEM>\n", os.Args[0])
		os.Exit(2)
	}

	text, err := dump.RenderConstants(dump.FilePath(os.Args[1]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(text)
}
