package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
)

type typstExtensions struct{}

// Extensions registers the inline and block syntax beyond GFM that the
// converter understands.
var Extensions = &typstExtensions{}

func (e *typstExtensions) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(NewMathParser(), 90),
			util.Prioritized(NewWikiLinkParser(), 199),
			util.Prioritized(NewUnderscoreParser(), 450),
			util.Prioritized(NewSubscriptParser(), 450),
			util.Prioritized(NewSuperscriptParser(), 450),
			util.Prioritized(NewSpoilerParser(), 450),
		),
		parser.WithBlockParsers(
			util.Prioritized(NewMathBlockParser(), 150),
			util.Prioritized(NewMultilineQuoteParser(), 790),
		),
	)
}
