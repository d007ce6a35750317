// Command llgen is a debug CLI for the lexer and parser runtimes: it
// drives the bundled fixture grammar so the two drivers can be exercised
// and inspected without a generator or a real target grammar at hand.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-llgen/cmd/llgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
