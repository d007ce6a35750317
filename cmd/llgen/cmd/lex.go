package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-llgen/internal/fixture"
	"github.com/spf13/cobra"
)

var (
	lexEval    string
	showOffset bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize source against the bundled fixture grammar",
	Long: `Tokenize (lex) input against the fixture grammar and print the
resulting token stream.

Examples:
  # Tokenize a file
  llgen lex input.txt

  # Tokenize inline text
  llgen lex -e "a 1; b;"

  # Show start offsets alongside token ids
  llgen lex --show-offset -e "a 1; b;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline text instead of reading from a file")
	lexCmd.Flags().BoolVar(&showOffset, "show-offset", false, "show each token's start offset")
}

func runLex(cmd *cobra.Command, args []string) error {
	src, err := readSource(lexEval, args)
	if err != nil {
		return err
	}

	sink := fixtureSink()
	fixture.NewLexerDriver(sink).Run(src)

	toks, offs := sink.Tokens(), sink.Offsets()
	for i, tok := range toks {
		if showOffset {
			fmt.Printf("%s @%d\n", tokenName(tok), offs[i])
		} else {
			fmt.Println(tokenName(tok))
		}
	}
	return nil
}

func tokenName(tok uint16) string {
	switch tok {
	case fixture.TokID:
		return "ID"
	case fixture.TokInt:
		return "INT"
	case fixture.TokSemi:
		return "SEMI"
	case fixture.TokEOF:
		return "EOF"
	default:
		return fmt.Sprintf("TOK(%d)", tok)
	}
}

func readSource(eval string, args []string) ([]byte, error) {
	if eval != "" {
		return []byte(eval), nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("either provide a file path or use -e for inline text")
}
