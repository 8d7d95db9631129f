package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/noobforanonymous/keikaku-programming-language/internal/evaluator"
	"github.com/noobforanonymous/keikaku-programming-language/internal/kerr"
	"github.com/noobforanonymous/keikaku-programming-language/internal/lexer"
	"github.com/noobforanonymous/keikaku-programming-language/internal/parser"
)

// runREPL is the fallback entered when keikaku is invoked bare. Keikaku's
// grammar is indentation-structured, so a single prompt line at a time
// would break any block construct (protocol, loop, entity); instead a
// "chunk" is accumulated until a blank line is seen, then lexed, parsed,
// and run against one persistent Interp, so manifests and bindings from
// one chunk are visible to the next.
func runREPL() error {
	fmt.Fprintln(os.Stderr, "keikaku "+Version+" -- blank line submits a chunk, ctrl-d exits")

	it := evaluator.New(os.Stdout, os.Stdin)
	scanner := bufio.NewScanner(os.Stdin)
	var chunk strings.Builder

	prompt := func() {
		if chunk.Len() == 0 {
			fmt.Fprint(os.Stderr, ">>> ")
		} else {
			fmt.Fprint(os.Stderr, "... ")
		}
	}

	prompt()
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" && chunk.Len() > 0 {
			runChunk(it, chunk.String())
			chunk.Reset()
			prompt()
			continue
		}
		if strings.TrimSpace(line) != "" {
			chunk.WriteString(line)
			chunk.WriteByte('\n')
		}
		prompt()
	}
	if chunk.Len() > 0 {
		runChunk(it, chunk.String())
	}
	fmt.Fprintln(os.Stderr)
	return nil
}

func runChunk(it *evaluator.Interp, src string) {
	l := lexer.New(src)
	p := parser.New(l)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		msgs := make([]error, len(errs))
		for i, e := range errs {
			msgs[i] = e
		}
		fmt.Fprintln(os.Stderr, kerr.FormatErrors(msgs))
		return
	}

	if err := it.RunIncorporated(it.Global, program, "<repl>"); err != nil {
		fmt.Fprintln(os.Stderr, "error: "+err.Error())
	}
}
