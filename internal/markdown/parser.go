package markdown

import (
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-md2typst/internal/document"
)

// ErrParse is returned when the Markdown parser fails on its input.
var ErrParse = errors.New("markdown parse failed")

// Parser converts Markdown source to a document tree. It is safe for
// concurrent use.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a Parser with every supported extension enabled.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
				extension.DefinitionList,
				Extensions,
			),
		),
	}
}

// Parse parses source and converts it to a document tree.
func (p *Parser) Parse(source []byte) (doc *document.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: %v", ErrParse, r)
		}
	}()

	root := p.md.Parser().Parse(text.NewReader(source))
	c := newConverter(source)
	c.collectFootnoteNames(root)
	return c.convertDocument(root), nil
}

var defaultParser = NewParser()

// Parse parses source with a shared default Parser.
func Parse(source []byte) (*document.Document, error) {
	return defaultParser.Parse(source)
}
