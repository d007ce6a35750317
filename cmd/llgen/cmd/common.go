package cmd

import "github.com/cwbudde/go-llgen/internal/lexer"

// fixtureSink returns the in-memory token sink (batches of 256 slots)
// used by subcommands that drive the lexer directly.
func fixtureSink() *lexer.SliceSink {
	return lexer.NewSliceSink(256)
}
