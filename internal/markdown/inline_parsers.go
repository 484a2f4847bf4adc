package markdown

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// closingIndex returns the index of the first occurrence of delim in line at
// or after from, stopping at the end of the line. Content containing
// whitespace is rejected when tight is set.
func closingIndex(line []byte, from int, delim []byte, tight bool) int {
	for i := from; i < len(line); i++ {
		c := line[i]
		if c == '\n' || c == '\r' {
			return -1
		}
		if tight && (c == ' ' || c == '\t') {
			return -1
		}
		if bytes.HasPrefix(line[i:], delim) {
			return i
		}
	}
	return -1
}

// underscoreAttr marks emphasis whose delimiters were underscores.
var underscoreAttr = []byte("underscore")

type underscoreDelimiterProcessor struct{}

func (p *underscoreDelimiterProcessor) IsDelimiter(b byte) bool {
	return b == '_'
}

func (p *underscoreDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (p *underscoreDelimiterProcessor) OnMatch(consumes int) ast.Node {
	n := ast.NewEmphasis(consumes)
	n.SetAttribute(underscoreAttr, true)
	return n
}

var defaultUnderscoreProcessor = &underscoreDelimiterProcessor{}

type underscoreParser struct{}

// NewUnderscoreParser parses _ and __ emphasis like the built-in emphasis
// parser and tags the resulting nodes, so __text__ can become underline.
func NewUnderscoreParser() parser.InlineParser {
	return &underscoreParser{}
}

func (p *underscoreParser) Trigger() []byte {
	return []byte{'_'}
}

func (p *underscoreParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 1, defaultUnderscoreProcessor)
	if node == nil {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

type subscriptParser struct{}

// NewSubscriptParser parses ~text~. Double tildes are left to strikethrough.
func NewSubscriptParser() parser.InlineParser {
	return &subscriptParser{}
}

func (p *subscriptParser) Trigger() []byte {
	return []byte{'~'}
}

func (p *subscriptParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 3 || line[0] != '~' || line[1] == '~' {
		return nil
	}
	closing := closingIndex(line, 1, []byte{'~'}, true)
	if closing <= 1 {
		return nil
	}
	if closing+1 < len(line) && line[closing+1] == '~' {
		return nil
	}

	block.Advance(closing + 1)
	return &SubscriptNode{Content: string(line[1:closing])}
}

type superscriptParser struct{}

// NewSuperscriptParser parses ^text^.
func NewSuperscriptParser() parser.InlineParser {
	return &superscriptParser{}
}

func (p *superscriptParser) Trigger() []byte {
	return []byte{'^'}
}

func (p *superscriptParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 3 || line[0] != '^' {
		return nil
	}
	closing := closingIndex(line, 1, []byte{'^'}, true)
	if closing <= 1 {
		return nil
	}

	block.Advance(closing + 1)
	return &SuperscriptNode{Content: string(line[1:closing])}
}

type spoilerParser struct{}

// NewSpoilerParser parses ||text||.
func NewSpoilerParser() parser.InlineParser {
	return &spoilerParser{}
}

func (p *spoilerParser) Trigger() []byte {
	return []byte{'|'}
}

func (p *spoilerParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 5 || !bytes.HasPrefix(line, []byte("||")) {
		return nil
	}
	closing := closingIndex(line, 2, []byte("||"), false)
	if closing <= 2 || len(bytes.TrimSpace(line[2:closing])) == 0 {
		return nil
	}

	block.Advance(closing + 2)
	return &SpoilerNode{Content: string(line[2:closing])}
}

type wikiLinkParser struct{}

// NewWikiLinkParser parses [[target]] and [[target|label]].
func NewWikiLinkParser() parser.InlineParser {
	return &wikiLinkParser{}
}

func (p *wikiLinkParser) Trigger() []byte {
	return []byte{'['}
}

func (p *wikiLinkParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 5 || !bytes.HasPrefix(line, []byte("[[")) {
		return nil
	}
	closing := closingIndex(line, 2, []byte("]]"), false)
	if closing <= 2 {
		return nil
	}
	inner := line[2:closing]
	if bytes.ContainsAny(inner, "[]") {
		return nil
	}

	target, label, _ := bytes.Cut(inner, []byte{'|'})
	target = bytes.TrimSpace(target)
	if len(target) == 0 {
		return nil
	}

	block.Advance(closing + 2)
	return &WikiLinkNode{
		Target: string(target),
		Label:  string(bytes.TrimSpace(label)),
	}
}

type mathParser struct{}

// NewMathParser parses $inline$, $`inline`$ and $$display$$ math on a single
// line. An opening dollar followed by a space, or a closing dollar preceded
// by a space or followed by a digit, does not delimit math.
func NewMathParser() parser.InlineParser {
	return &mathParser{}
}

func (p *mathParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *mathParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 3 || line[0] != '$' {
		return nil
	}

	switch line[1] {
	case '$':
		closing := closingIndex(line, 2, []byte("$$"), false)
		if closing < 0 || len(bytes.TrimSpace(line[2:closing])) == 0 {
			return nil
		}
		block.Advance(closing + 2)
		return &MathNode{Literal: string(line[2:closing]), Display: true}
	case '`':
		closing := closingIndex(line, 2, []byte("`$"), false)
		if closing <= 2 {
			return nil
		}
		block.Advance(closing + 2)
		return &MathNode{Literal: string(line[2:closing])}
	case ' ', '\t', '\n', '\r':
		return nil
	}

	for i := 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '\n', '\r':
			return nil
		case '$':
			if line[i-1] == ' ' || line[i-1] == '\t' {
				continue
			}
			if i+1 < len(line) && line[i+1] >= '0' && line[i+1] <= '9' {
				continue
			}
			block.Advance(i + 1)
			return &MathNode{Literal: string(line[1:i])}
		}
	}
	return nil
}
