package markdown

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var mathFence = []byte("$$")

type mathBlockParser struct{}

// NewMathBlockParser parses display math opened by a line starting with $$.
// The block ends at the first line ending with $$, or on the opening line
// itself when the closing fence is on it. Without a closing fence before the
// next blank line no block is opened and the lines stay ordinary text.
func NewMathBlockParser() parser.BlockParser {
	return &mathBlockParser{}
}

func (p *mathBlockParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *mathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !bytes.HasPrefix(line[pos:], mathFence) {
		return nil, parser.NoChildren
	}

	rest := line[pos+len(mathFence):]
	node := &MathBlockNode{}
	if end := bytes.Index(rest, mathFence); end >= 0 {
		if !util.IsBlank(rest[end+len(mathFence):]) {
			return nil, parser.NoChildren
		}
		node.Literal = append(node.Literal, bytes.TrimSpace(rest[:end])...)
		node.closed = true
	} else {
		if !hasClosingFence(reader.Source(), segment.Stop) {
			return nil, parser.NoChildren
		}
		if trimmed := bytes.TrimSpace(rest); len(trimmed) > 0 {
			node.Literal = append(node.Literal, trimmed...)
			node.Literal = append(node.Literal, '\n')
		}
	}

	reader.Advance(segment.Len() - 1)
	return node, parser.NoChildren
}

func (p *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	n := node.(*MathBlockNode)
	if n.closed {
		return parser.Close
	}

	line, segment := reader.PeekLine()
	if line == nil || util.IsBlank(line) {
		return parser.Close
	}
	trimmed := bytes.TrimRight(line, " \t\r\n")
	if bytes.HasSuffix(trimmed, mathFence) {
		n.Literal = append(n.Literal, bytes.TrimSpace(trimmed[:len(trimmed)-len(mathFence)])...)
		n.closed = true
		reader.Advance(segment.Len() - 1)
		return parser.Close
	}

	n.Literal = append(n.Literal, util.TrimRightSpace(line)...)
	n.Literal = append(n.Literal, '\n')
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

// hasClosingFence reports whether a line ending with $$ appears in source,
// starting at offset from, before the next blank line.
func hasClosingFence(source []byte, from int) bool {
	for from < len(source) {
		line := source[from:]
		if end := bytes.IndexByte(line, '\n'); end >= 0 {
			line = line[:end]
			from += end + 1
		} else {
			from = len(source)
		}
		if util.IsBlank(line) {
			return false
		}
		if bytes.HasSuffix(bytes.TrimRight(line, " \t\r"), mathFence) {
			return true
		}
	}
	return false
}

func (p *mathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	n := node.(*MathBlockNode)
	n.Literal = bytes.TrimSpace(n.Literal)
}

func (p *mathBlockParser) CanInterruptParagraph() bool {
	return true
}

func (p *mathBlockParser) CanAcceptIndentedLine() bool {
	return false
}

var quoteFence = []byte(">>>")

type multilineQuoteParser struct{}

// NewMultilineQuoteParser parses block quotes fenced by ">>>" lines. The
// content between the fences is parsed as ordinary blocks.
func NewMultilineQuoteParser() parser.BlockParser {
	return &multilineQuoteParser{}
}

func (p *multilineQuoteParser) Trigger() []byte {
	return []byte{'>'}
}

func isQuoteFence(line []byte) bool {
	return bytes.Equal(bytes.TrimSpace(line), quoteFence)
}

func (p *multilineQuoteParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !isQuoteFence(line[pos:]) {
		return nil, parser.NoChildren
	}
	reader.Advance(segment.Len() - 1)
	return &MultilineQuoteNode{}, parser.HasChildren
}

func (p *multilineQuoteParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if line == nil {
		return parser.Close
	}
	if isQuoteFence(line) {
		reader.Advance(segment.Len() - 1)
		return parser.Close
	}
	return parser.Continue | parser.HasChildren
}

func (p *multilineQuoteParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *multilineQuoteParser) CanInterruptParagraph() bool {
	return true
}

func (p *multilineQuoteParser) CanAcceptIndentedLine() bool {
	return false
}
