package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "llgen",
	Short: "Debug driver for a generated lexer/parser pair",
	Long: `llgen drives the lexer and parser runtimes in this module against
a small bundled fixture grammar (a flat list of "id;" / "int;"
statements).

It exists to make the two drivers' behavior inspectable by hand --
tokenizing, stepping the parser, and watching recovery kick in -- the
way a generator's own test harness would, without requiring a real
generated grammar to be on hand.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
