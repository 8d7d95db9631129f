package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noobforanonymous/keikaku-programming-language/internal/evaluator"
	"github.com/noobforanonymous/keikaku-programming-language/internal/kerr"
	"github.com/noobforanonymous/keikaku-programming-language/internal/lexer"
	"github.com/noobforanonymous/keikaku-programming-language/internal/parser"
)

var (
	evalExpr string
	dumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Keikaku file or expression",
	Long: `Execute a Keikaku program from a file or inline expression.

Examples:
  # Run a script file
  keikaku run story.kei

  # Evaluate an inline expression
  keikaku run -e "declare(\"hello\")"

  # Run with AST dump (for debugging)
  keikaku run --dump-ast story.kei`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	var input string
	var filename string

	switch {
	case evalExpr != "":
		input = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		msgs := make([]error, len(errs))
		for i, e := range errs {
			msgs[i] = e
		}
		fmt.Fprintln(os.Stderr, kerr.FormatErrors(msgs))
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(program.String())
		fmt.Println()
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[running %s]\n", filename)
	}

	it := evaluator.New(os.Stdout, os.Stdin)
	if status := it.Run(program); status != 0 {
		return fmt.Errorf("execution failed")
	}
	return nil
}
