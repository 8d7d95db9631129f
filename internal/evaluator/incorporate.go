package evaluator

import (
	"os"

	"github.com/noobforanonymous/keikaku-programming-language/internal/ast"
	"github.com/noobforanonymous/keikaku-programming-language/internal/kerr"
	"github.com/noobforanonymous/keikaku-programming-language/internal/lexer"
	"github.com/noobforanonymous/keikaku-programming-language/internal/parser"
	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

// loadIncorporated reads, lexes, and parses a host path for `incorporate`.
func (it *Interp) loadIncorporated(path string) (*ast.Program, *kerr.RuntimeError) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, kerr.Newf(kerr.ImportFailed, token.Position{}, "cannot read %q: %s", path, err.Error())
	}
	l := lexer.New(string(src))
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		msgs := make([]error, len(errs))
		for i, e := range errs {
			msgs[i] = e
		}
		return nil, kerr.Newf(kerr.SyntaxError, token.Position{}, "%s", kerr.FormatErrors(msgs))
	}
	return prog, nil
}
