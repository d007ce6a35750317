package cmd

import (
	"fmt"

	"github.com/cwbudde/go-llgen/internal/alloc"
	"github.com/cwbudde/go-llgen/internal/errors"
	"github.com/cwbudde/go-llgen/internal/fixture"
	"github.com/cwbudde/go-llgen/internal/parser"
	"github.com/spf13/cobra"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse source against the bundled fixture grammar",
	Long: `Parse input against the fixture grammar ("id;" / "int;" statements)
and report the statements recognized, any recovery the parser
performed, and the final result code.

Examples:
  llgen parse input.txt
  llgen parse -e "a; 1; b"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline text instead of reading from a file")
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := readSource(parseEval, args)
	if err != nil {
		return err
	}

	tokens := fixture.Lex(src)
	p, log := fixture.NewParserState(alloc.Native{})
	defer p.Destroy()

	result := p.Run(tokens)

	for _, stmt := range log.Statements {
		fmt.Printf("statement: %s\n", stmt.Kind)
	}
	for _, n := range log.PanicSkips {
		fmt.Printf("recovery: panic-skip %d token(s)\n", n)
	}
	for _, tok := range log.Inserted {
		fmt.Printf("recovery: inserted %s\n", tokenName(tok))
	}
	if log.Removed > 0 {
		fmt.Printf("recovery: removed %d token(s)\n", log.Removed)
	}
	for _, tok := range log.Replaced {
		fmt.Printf("recovery: replaced with %s\n", tokenName(tok))
	}

	fmt.Printf("result: %s\n", result)
	if result != parser.OK {
		if cerr, ok := p.Err().(*errors.CompilerError); ok {
			fmt.Println(cerr.Format(true))
		}
		return fmt.Errorf("parse did not complete cleanly: %s", result)
	}
	return nil
}
