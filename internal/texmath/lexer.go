package texmath

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// texLexer splits a LaTeX math literal into tokens. Rules are tried in order.
var texLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Command", Pattern: `\\(?:[a-zA-Z]+|[^a-zA-Z])`},
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]+)?`},
	{Name: "Letter", Pattern: `[a-zA-Z]`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "Script", Pattern: `[_^]`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Symbol", Pattern: `.`},
})

var (
	symbols       = texLexer.Symbols()
	tokCommand    = symbols["Command"]
	tokNumber     = symbols["Number"]
	tokLetter     = symbols["Letter"]
	tokLBrace     = symbols["LBrace"]
	tokRBrace     = symbols["RBrace"]
	tokScript     = symbols["Script"]
	tokWhitespace = symbols["Whitespace"]
	tokSymbol     = symbols["Symbol"]
)

// tokenize returns the tokens of src without the trailing EOF token.
// Whitespace tokens are kept because \text arguments need them.
func tokenize(src string) ([]lexer.Token, error) {
	lex, err := texLexer.LexString("", src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	all, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	tokens := all[:0]
	for _, t := range all {
		if t.EOF() {
			break
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}
